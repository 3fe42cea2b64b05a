package expr

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCompileEval(t *testing.T) {
	tests := []struct {
		src  string
		x, y float64
		want float64
	}{
		{"x + y", 0.1, 1.1, 1.2},
		{"-2*x*y", 1, 2, -4},
		{"x - y - 1", 5, 2, 2},
		{"x / y / 2", 8, 2, 2},
		{"2^3^2", 0, 0, 512},
		{"2**3", 0, 0, 8},
		{"-x^2", 3, 0, -9},
		{"(-x)^2", 3, 0, 9},
		{"2^-1", 0, 0, 0.5},
		{"+x", 4, 0, 4},
		{"sin(x)*y", math.Pi / 2, 3, 3},
		{"exp(0) + ln(e) + log(1)", 0, 0, 2},
		{"sqrt(x) + abs(y)", 9, -2, 5},
		{"pi", 0, 0, math.Pi},
		{"1e-3 * x", 1000, 0, 1},
		{"2.5E2", 0, 0, 250},
		{" x\t+ y ", 1, 2, 3},
		{"atan(1)*4", 0, 0, math.Pi},
		{"cosh(0) + sinh(0) + tanh(0)", 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.src, err)
			}
			got, err := f.Eval(tt.x, tt.y)
			if err != nil {
				t.Fatalf("Eval error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Eval(%g, %g) = %g, want %g", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCompileSyntaxErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"x +",
		"(x",
		"x)",
		"2x",
		"1..2",
		"x $ y",
		"x.real",
		"sin x",
		"sin()",
		"x ** ",
		"*x",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Compile(src)
			if err == nil {
				t.Fatalf("Compile(%q) expected error", src)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Compile(%q) error = %v, want ErrSyntax", src, err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("expected *SyntaxError, got %T", err)
			}
		})
	}
}

func TestCompileUnknownSymbols(t *testing.T) {
	tests := []struct {
		src      string
		name     string
		function bool
	}{
		{"z + x", "z", false},
		{"foo(x)", "foo", true},
		{"__import__(y)", "__import__", true},
		{"x + eval(y)", "eval", true},
		{"x(2)", "x", true},
		{"t", "t", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Compile(tt.src)
			if !errors.Is(err, ErrUnknownSymbol) {
				t.Fatalf("Compile(%q) error = %v, want ErrUnknownSymbol", tt.src, err)
			}
			var ue *UnknownSymbolError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *UnknownSymbolError, got %T", err)
			}
			if ue.Name != tt.name || ue.Func != tt.function {
				t.Errorf("got name=%q func=%v, want name=%q func=%v", ue.Name, ue.Func, tt.name, tt.function)
			}
		})
	}
}

func TestEvalDomainErrors(t *testing.T) {
	tests := []struct {
		src  string
		x, y float64
		op   string
	}{
		{"1/y", 0, 0, "/"},
		{"log(x)", -1, 0, "log"},
		{"ln(x)", 0, 0, "ln"},
		{"sqrt(y)", 0, -1, "sqrt"},
		{"asin(x)", 2, 0, "asin"},
		{"acos(x)", -2, 0, "acos"},
		{"x^0.5", -1, 0, "^"},
		{"x^-1", 0, 0, "^"},
		{"exp(x)", 1000, 0, "exp"},
		{"x*y", 1e200, 1e200, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}
			_, err = f.Eval(tt.x, tt.y)
			if !errors.Is(err, ErrDomain) {
				t.Fatalf("Eval error = %v, want ErrDomain", err)
			}
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DomainError, got %T", err)
			}
			if de.Op != tt.op {
				t.Errorf("Op = %q, want %q", de.Op, tt.op)
			}
		})
	}
}

func TestDomainErrorReportsPoint(t *testing.T) {
	f, err := Compile("1/y")
	if err != nil {
		t.Fatal(err)
	}
	_, err = f.Eval(0.5, 0)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "division by zero") || !strings.Contains(msg, "x=0.5, y=0") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestEvalArity(t *testing.T) {
	f, err := Compile("x + y")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Eval(1); !errors.Is(err, ErrArity) {
		t.Errorf("expected ErrArity, got %v", err)
	}
}

func TestEvalDeterministic(t *testing.T) {
	f, err := Compile("sin(x)*exp(-y) + x^3/7")
	if err != nil {
		t.Fatal(err)
	}
	a, _ := f.Eval(0.3, 1.7)
	b, _ := f.Eval(0.3, 1.7)
	if a != b {
		t.Errorf("repeated evaluation differs: %v vs %v", a, b)
	}
}

func TestStringRoundTrip(t *testing.T) {
	sources := []string{
		"x + y",
		"-2*x*y",
		"x - (y - 1)",
		"x / (y * 2)",
		"(x + 1)^2",
		"(-x)^2",
		"-x^2",
		"2^(3^x)",
		"x^-1",
		"x * -y",
		"x - -y",
		"sin(x + y) / cos(x)",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			f, err := Compile(src)
			if err != nil {
				t.Fatal(err)
			}
			g, err := Compile(f.String())
			if err != nil {
				t.Fatalf("re-Compile(%q) error: %v", f.String(), err)
			}
			for _, p := range [][2]float64{{0.5, 1.5}, {2, -3}, {-1.25, 0.75}} {
				a, errA := f.Eval(p[0], p[1])
				b, errB := g.Eval(p[0], p[1])
				if (errA == nil) != (errB == nil) || math.Abs(a-b) > 1e-12 {
					t.Errorf("%q vs %q differ at %v: %v/%v, %v/%v", src, f.String(), p, a, errA, b, errB)
				}
			}
		})
	}
}

func TestNestingLimit(t *testing.T) {
	src := strings.Repeat("(", maxDepth+10) + "x" + strings.Repeat(")", maxDepth+10)
	_, err := Compile(src)
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax for deep nesting, got %v", err)
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"0 + x*1", "x"},
		{"x*2", "2 * x"},
		{"--y", "y"},
		{"2 + 3", "5"},
		{"x^1 + y^0", "x + 1"},
		{"x + -1", "x - 1"},
		{"0 - y", "-y"},
		{"1/0", "1 / 0"},
		{"x / 1", "x"},
		{"exp(0) * y", "y"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root, err := Parse(tt.src, "x", "y")
			if err != nil {
				t.Fatal(err)
			}
			if got := Simplify(root).String(); got != tt.want {
				t.Errorf("Simplify(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestNewBindsVariables(t *testing.T) {
	tree := Mul(Num(3), Call("exp", Var("x")))
	e, err := New(tree, "x")
	if err != nil {
		t.Fatal(err)
	}
	got, err := e.Eval(0)
	if err != nil || got != 3 {
		t.Errorf("Eval(0) = %v, %v; want 3", got, err)
	}

	if _, err := New(Add(Var("x"), Var("y")), "x"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol for unbound y, got %v", err)
	}
}

func TestDependsOn(t *testing.T) {
	f, err := Compile("sin(x) * 2")
	if err != nil {
		t.Fatal(err)
	}
	if !f.DependsOn("x") || f.DependsOn("y") {
		t.Errorf("DependsOn wrong for %q", f.String())
	}
}
