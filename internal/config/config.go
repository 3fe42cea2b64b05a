package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odesim/internal/sim"
)

const (
	DefaultExpression = "x + y"
	DefaultX0         = 0.0
	DefaultY0         = 1.0
	DefaultXEnd       = 1.0
	DefaultH          = 0.1
	DefaultMethod     = "both"
	DefaultIterations = 1
	DefaultDigits     = 6
	DefaultPlotWidth  = 60
	DefaultPlotHeight = 15
)

type Config struct {
	Expression string     `yaml:"expression" toml:"expression"`
	X0         float64    `yaml:"x0" toml:"x0"`
	Y0         float64    `yaml:"y0" toml:"y0"`
	XEnd       float64    `yaml:"x_end" toml:"x_end"`
	H          float64    `yaml:"h" toml:"h"`
	Method     string     `yaml:"method" toml:"method"`
	Iterations int        `yaml:"iterations" toml:"iterations"`
	Digits     int        `yaml:"digits" toml:"digits"`
	MaxSteps   int        `yaml:"max_steps,omitempty" toml:"max_steps,omitempty"`
	Log        LogConfig  `yaml:"log" toml:"log"`
	Plot       PlotConfig `yaml:"plot" toml:"plot"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=text json"`
}

type PlotConfig struct {
	Width  int `yaml:"width" toml:"width" validate:"gte=10,lte=400"`
	Height int `yaml:"height" toml:"height" validate:"gte=3,lte=100"`
}

func DefaultConfig() *Config {
	return &Config{
		Expression: DefaultExpression,
		X0:         DefaultX0,
		Y0:         DefaultY0,
		XEnd:       DefaultXEnd,
		H:          DefaultH,
		Method:     DefaultMethod,
		Iterations: DefaultIterations,
		Digits:     DefaultDigits,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
		},
	}
}

var validate = validator.New()

// Validate checks the presentation settings and then the solve parameters.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return c.ToRequest().Validate()
}

func (c *Config) ToRequest() sim.Request {
	return sim.Request{
		Expression: c.Expression,
		X0:         c.X0,
		Y0:         c.Y0,
		XEnd:       c.XEnd,
		H:          c.H,
		Method:     sim.Method(c.Method),
		Iterations: c.Iterations,
		Digits:     c.Digits,
		MaxSteps:   c.MaxSteps,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML file, or TOML when the extension is .toml. Fields the
// file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
