package config

import "sort"

// Presets groups ready-made problems by the kind of closed form they have.
var Presets = map[string]map[string]*Config{
	"linear": {
		"growth": {
			Expression: "x + y", X0: 0, Y0: 1, XEnd: 1, H: 0.1,
			Method: "both", Iterations: 1, Digits: 6,
		},
		"decay": {
			Expression: "-y", X0: 0, Y0: 1, XEnd: 3, H: 0.25,
			Method: "both", Iterations: 1, Digits: 6,
		},
		"forced": {
			Expression: "2*y - x", X0: 0, Y0: 1, XEnd: 1, H: 0.05,
			Method: "heun", Iterations: 3, Digits: 6,
		},
	},
	"separable": {
		"gaussian": {
			Expression: "-2*x*y", X0: 0, Y0: 1, XEnd: 1, H: 0.1,
			Method: "heun", Iterations: 1, Digits: 6,
		},
		"blowup": {
			Expression: "y^2", X0: 0, Y0: 1, XEnd: 0.9, H: 0.05,
			Method: "both", Iterations: 2, Digits: 6,
		},
		"inverse": {
			Expression: "1/y", X0: 0, Y0: 0, XEnd: 1, H: 0.1,
			Method: "both", Iterations: 1, Digits: 6,
		},
	},
	"quadrature": {
		"wave": {
			Expression: "cos(x)", X0: 0, Y0: 0, XEnd: 6.28, H: 0.2,
			Method: "both", Iterations: 1, Digits: 5,
		},
		"cubic": {
			Expression: "3*x^2 - 1", X0: -1, Y0: 0, XEnd: 1, H: 0.1,
			Method: "euler", Iterations: 1, Digits: 6,
		},
	},
	"nonlinear": {
		"logistic": {
			Expression: "y*(1-y)", X0: 0, Y0: 0.1, XEnd: 5, H: 0.25,
			Method: "both", Iterations: 2, Digits: 5,
		},
	},
}

// GetPreset returns a copy of the preset with default log and plot settings.
func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	out := *cfg
	def := DefaultConfig()
	out.Log = def.Log
	out.Plot = def.Plot
	return &out
}

// FindPreset looks a preset up by name across every group.
func FindPreset(name string) (*Config, string) {
	for _, group := range ListGroups() {
		if cfg := GetPreset(group, name); cfg != nil {
			return cfg, group
		}
	}
	return nil, ""
}

func ListGroups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
