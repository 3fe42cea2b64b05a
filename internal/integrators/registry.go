package integrators

import (
	"fmt"
	"sort"
)

// Registry maps method names to stepper constructors. The argument is the
// corrector iteration count; methods without a corrector ignore it.
type Registry struct {
	steppers map[string]func(iterations int) Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		steppers: make(map[string]func(int) Stepper),
	}

	r.steppers["euler"] = func(int) Stepper { return NewEuler() }
	r.steppers["heun"] = func(iterations int) Stepper { return NewHeun(iterations) }

	return r
}

func (r *Registry) Register(name string, fn func(iterations int) Stepper) {
	r.steppers[name] = fn
}

func (r *Registry) Get(name string, iterations int) (Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", name)
	}
	return fn(iterations), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.steppers))
	for name := range r.steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
