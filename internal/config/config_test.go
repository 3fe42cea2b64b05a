package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odesim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "x + y", cfg.Expression)
	assert.Greater(t, cfg.H, 0.0)
	assert.Greater(t, cfg.XEnd, cfg.X0)
	require.NoError(t, cfg.Validate())
}

func TestToRequest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "heun"
	cfg.Iterations = 3

	req := cfg.ToRequest()
	assert.Equal(t, sim.MethodHeun, req.Method)
	assert.Equal(t, 3, req.Iterations)
	assert.Equal(t, cfg.Expression, req.Expression)
	assert.Equal(t, cfg.XEnd, req.XEnd)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "expression: \"-2*x*y\"\nmethod: heun\nh: 0.05\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "-2*x*y", cfg.Expression)
	assert.Equal(t, "heun", cfg.Method)
	assert.Equal(t, 0.05, cfg.H)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched fields keep defaults
	assert.Equal(t, DefaultXEnd, cfg.XEnd)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := "expression = \"-y\"\nx_end = 3.0\ndigits = 4\n\n[plot]\nwidth = 80\nheight = 20\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "-y", cfg.Expression)
	assert.Equal(t, 3.0, cfg.XEnd)
	assert.Equal(t, 4, cfg.Digits)
	assert.Equal(t, 80, cfg.Plot.Width)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("h: -1\n"), 0644))
	_, err := Load(bad)
	assert.True(t, errors.Is(err, sim.ErrValidation), "got %v", err)

	format := filepath.Join(dir, "format.yaml")
	require.NoError(t, os.WriteFile(format, []byte("log:\n  format: xml\n"), 0644))
	_, err = Load(format)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := DefaultConfig()
			cfg.Expression = "sin(x)*y"
			cfg.Iterations = 4

			require.NoError(t, Save(path, cfg))
			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("separable", "gaussian")
	require.NotNil(t, cfg)
	assert.Equal(t, "-2*x*y", cfg.Expression)
	assert.Equal(t, DefaultPlotWidth, cfg.Plot.Width)

	cfg.Expression = "changed"
	assert.Equal(t, "-2*x*y", Presets["separable"]["gaussian"].Expression)
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("separable", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "gaussian"))
}

func TestFindPreset(t *testing.T) {
	cfg, group := FindPreset("logistic")
	require.NotNil(t, cfg)
	assert.Equal(t, "nonlinear", group)

	cfg, group = FindPreset("nope")
	assert.Nil(t, cfg)
	assert.Empty(t, group)
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"decay", "forced", "growth"}, ListPresets("linear"))
	assert.Nil(t, ListPresets("nonexistent"))
	assert.Equal(t, []string{"linear", "nonlinear", "quadrature", "separable"}, ListGroups())
}

func TestPresetsAreValid(t *testing.T) {
	for _, group := range ListGroups() {
		for _, name := range ListPresets(group) {
			cfg := GetPreset(group, name)
			assert.NoError(t, cfg.Validate(), "%s/%s", group, name)
		}
	}
}
