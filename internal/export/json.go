package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/odesim/internal/sim"
)

type Document struct {
	RunID       string        `json:"run_id"`
	Request     sim.Request   `json:"request"`
	Steps       int           `json:"steps"`
	Exact       string        `json:"exact,omitempty"`
	ExactMethod string        `json:"exact_method,omitempty"`
	SolverError string        `json:"solver_error,omitempty"`
	Partial     bool          `json:"partial"`
	Variants    []VariantData `json:"variants"`
}

type VariantData struct {
	Name     string             `json:"name"`
	Complete bool               `json:"complete"`
	Failure  string             `json:"failure,omitempty"`
	Metrics  map[string]float64 `json:"metrics"`
	Rows     []sim.Row          `json:"rows"`
}

// NewDocument flattens res into its exported form. Values are rounded to
// the requested digits.
func NewDocument(res *sim.Result) (*Document, error) {
	doc := &Document{
		RunID:    res.RunID,
		Request:  res.Request,
		Steps:    res.Grid.Steps,
		Partial:  res.Partial(),
		Variants: make([]VariantData, 0, len(res.Variants)),
	}
	if res.Exact != nil {
		doc.Exact = res.Exact.Expr.String()
		doc.ExactMethod = res.Exact.Method
	}
	if res.SolverErr != nil {
		doc.SolverError = res.SolverErr.Error()
	}

	for _, v := range res.Variants {
		rows, err := res.Rows(v.Name)
		if err != nil {
			return nil, err
		}
		vd := VariantData{
			Name:     v.Name,
			Complete: v.Trajectory.Complete(),
			Metrics:  make(map[string]float64, len(v.Summary)),
			Rows:     rows,
		}
		if v.Trajectory.Failure != nil {
			vd.Failure = v.Trajectory.Failure.Error()
		}
		for name, val := range v.Summary {
			vd.Metrics[name] = sim.RoundSig(val, res.Request.Digits)
		}
		doc.Variants = append(doc.Variants, vd)
	}
	return doc, nil
}

func WriteJSON(w io.Writer, res *sim.Result) error {
	doc, err := NewDocument(res)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
