package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odesim/internal/config"
	"github.com/san-kum/odesim/internal/sim"
)

// Scenario is a batch of solves described in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and overrides any
// field that is present in the file.
type ScenarioStep struct {
	Name       string   `yaml:"name"`
	Preset     string   `yaml:"preset"`
	Expression *string  `yaml:"expression"`
	X0         *float64 `yaml:"x0"`
	Y0         *float64 `yaml:"y0"`
	XEnd       *float64 `yaml:"x_end"`
	H          *float64 `yaml:"h"`
	Method     *string  `yaml:"method"`
	Iterations *int     `yaml:"iterations"`
	Digits     *int     `yaml:"digits"`
}

type StepResult struct {
	Name   string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Request resolves the step against its preset and the defaults.
func (st ScenarioStep) Request() (sim.Request, error) {
	cfg := config.DefaultConfig()
	if st.Preset != "" {
		p, _ := config.FindPreset(st.Preset)
		if p == nil {
			return sim.Request{}, fmt.Errorf("unknown preset: %s", st.Preset)
		}
		cfg = p
	}

	if st.Expression != nil {
		cfg.Expression = *st.Expression
	}
	if st.X0 != nil {
		cfg.X0 = *st.X0
	}
	if st.Y0 != nil {
		cfg.Y0 = *st.Y0
	}
	if st.XEnd != nil {
		cfg.XEnd = *st.XEnd
	}
	if st.H != nil {
		cfg.H = *st.H
	}
	if st.Method != nil {
		cfg.Method = *st.Method
	}
	if st.Iterations != nil {
		cfg.Iterations = *st.Iterations
	}
	if st.Digits != nil {
		cfg.Digits = *st.Digits
	}
	return cfg.ToRequest(), nil
}

func (st ScenarioStep) label(i int) string {
	switch {
	case st.Name != "":
		return st.Name
	case st.Preset != "":
		return st.Preset
	case st.Expression != nil:
		return *st.Expression
	}
	return fmt.Sprintf("step-%d", i+1)
}

// RunScenario solves every step in order and stops at the first step that
// cannot be solved. Partial results are not errors.
func RunScenario(ctx context.Context, scenario *Scenario, s *sim.Simulator, log *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.label(i)
		log.Info("running step", "step", i+1, "of", len(scenario.Steps), "name", name)

		req, err := step.Request()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		res, err := s.Solve(ctx, req)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, name, err)
		}

		results = append(results, StepResult{Name: name, Result: res})
	}

	return results, nil
}
