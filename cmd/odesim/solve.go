package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/odesim/internal/config"
	"github.com/san-kum/odesim/internal/export"
	"github.com/san-kum/odesim/internal/logging"
	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/sim"
	"github.com/san-kum/odesim/internal/viz"
)

// loadConfig layers defaults, a preset, the config file, the positional
// expression and finally any flag the user actually set.
func loadConfig(cmd *cobra.Command, expr []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, _ := config.FindPreset(preset)
		if p == nil {
			var all []string
			for _, g := range config.ListGroups() {
				all = append(all, config.ListPresets(g)...)
			}
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(all, ", "))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(expr) > 0 {
		cfg.Expression = expr[0]
	}

	flags := cmd.Flags()
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("x-end") {
		cfg.XEnd = xEnd
	}
	if flags.Changed("h") {
		cfg.H = h
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("digits") {
		cfg.Digits = digits
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("width") {
		cfg.Plot.Width = plotWidth
	} else if flags.Lookup("width") != nil && configFile == "" && isTerminal(os.Stdout) {
		cfg.Plot.Width = min(max(terminalWidth(cfg.Plot.Width)-12, 10), 400)
	}
	if flags.Changed("height") {
		cfg.Plot.Height = plotHeight
	}
	if flags.Changed("log-level") || configFile == "" {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") || configFile == "" {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
}

func solveFromFlags(cmd *cobra.Command, expr []string) (*config.Config, *sim.Result, error) {
	cfg, err := loadConfig(cmd, expr)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []sim.Option{sim.WithLogger(logger)}
	if tolerance > 0 {
		opts = append(opts, sim.WithMetrics(func() []metrics.Metric {
			return append(metrics.Defaults(), metrics.NewWithinTolerance(tolerance))
		}))
	}

	res, err := sim.New(opts...).Solve(cmd.Context(), cfg.ToRequest())
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	_, res, err := solveFromFlags(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Summary(res))
	return viz.RenderTable(out, res)
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, res, err := solveFromFlags(cmd, args)
	if err != nil {
		return err
	}
	opts := viz.PlotOptions{Width: cfg.Plot.Width, Height: cfg.Plot.Height}
	out := cmd.OutOrStdout()

	chart, err := viz.SolutionPlot(res, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, chart)

	chart, err = viz.ErrorPlot(res, opts)
	switch {
	case errors.Is(err, viz.ErrNothingToPlot):
		fmt.Fprintln(out, "\nno relative errors to plot (no closed form)")
	case err != nil:
		return err
	default:
		fmt.Fprintln(out, "\n"+chart)
	}
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return errNotTerminal
	}
	_, res, err := solveFromFlags(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(res)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := args[0]
	cfg, res, err := solveFromFlags(cmd, args[1:])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return export.WriteCSV(out, res)
	case "json":
		return export.WriteJSON(out, res)
	case "svg":
		// one terminal cell is roughly 10x20 pixels
		return export.WriteSVG(out, res, cfg.Plot.Width*10, cfg.Plot.Height*20)
	}
	return fmt.Errorf("unknown export format: %s (want csv, json or svg)", format)
}
