package sim

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Method string

const (
	MethodEuler Method = "euler"
	MethodHeun  Method = "heun"
	MethodBoth  Method = "both"
)

func (m Method) UsesHeun() bool { return m == MethodHeun || m == MethodBoth }

// Variant names as they appear in a Result.
const (
	VariantEuler        = "euler"
	VariantHeun         = "heun"
	VariantHeunIterated = "heun-iterated"
)

const DefaultMaxSteps = 1_000_000

// Request carries every parameter of one run. Iterations only matters for
// Heun; MaxSteps of zero means DefaultMaxSteps.
type Request struct {
	Expression string  `json:"expression" yaml:"expression" validate:"required"`
	X0         float64 `json:"x0" yaml:"x0" validate:"finite"`
	Y0         float64 `json:"y0" yaml:"y0" validate:"finite"`
	XEnd       float64 `json:"x_end" yaml:"x_end" validate:"finite,gtfield=X0"`
	H          float64 `json:"h" yaml:"h" validate:"finite,gt=0"`
	Method     Method  `json:"method" yaml:"method" validate:"oneof=euler heun both"`
	Iterations int     `json:"iterations" yaml:"iterations" validate:"gte=0"`
	Digits     int     `json:"digits" yaml:"digits" validate:"min=1,max=17"`
	MaxSteps   int     `json:"max_steps,omitempty" yaml:"max_steps,omitempty" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		x := fl.Field().Float()
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	})
	return v
}

// Validate reports the first invalid field as a *ValidationError.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			return &ValidationError{Field: ves[0].Field(), Reason: reason(ves[0])}
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if r.Method.UsesHeun() && r.Iterations < 1 {
		return &ValidationError{Field: "iterations", Reason: "must be at least 1 for heun"}
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "finite":
		return "must be a finite number"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gtfield":
		return "must be greater than x0"
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "failed " + fe.Tag()
}

func (r Request) budget() int {
	if r.MaxSteps > 0 {
		return r.MaxSteps
	}
	return DefaultMaxSteps
}

type variantSpec struct {
	name       string
	method     string
	iterations int
}

func (r Request) variants() []variantSpec {
	var out []variantSpec
	if r.Method == MethodEuler || r.Method == MethodBoth {
		out = append(out, variantSpec{name: VariantEuler, method: "euler", iterations: 1})
	}
	if r.Method.UsesHeun() {
		out = append(out, variantSpec{name: VariantHeun, method: "heun", iterations: 1})
		if r.Iterations > 1 {
			out = append(out, variantSpec{name: VariantHeunIterated, method: "heun", iterations: r.Iterations})
		}
	}
	return out
}

// Variants lists the variant names a run of r produces, in order.
func (r Request) Variants() []string {
	specs := r.variants()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.name
	}
	return names
}
