package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odesim/internal/automation"
	"github.com/san-kum/odesim/internal/config"
	"github.com/san-kum/odesim/internal/sim"
	"github.com/san-kum/odesim/internal/viz"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Log.Level, cfg.Log.Format = logLevel, logFormat
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, sim.New(sim.WithLogger(logger)), logger)

	out := cmd.OutOrStdout()
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s: %s\n\n", scenario.Name, scenario.Description)
	}
	for _, r := range results {
		fmt.Fprintln(out, viz.Title.Render("== "+r.Name+" =="))
		fmt.Fprintln(out, viz.Summary(r.Result))
		if terr := viz.RenderTable(out, r.Result); terr != nil {
			return terr
		}
		fmt.Fprintln(out)
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	sweep := &automation.StepSweep{
		Base:     cfg.ToRequest(),
		Variant:  variant,
		HMin:     hMin,
		HMax:     hMax,
		NumSteps: numSteps,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, sim.New(sim.WithLogger(logger)), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "h\tsteps\tx_end\ty(x_end)\texact\t% err")
	for _, r := range results {
		errCell, exact := "n/a", "n/a"
		if r.HasErr {
			errCell = fmt.Sprintf("%.*g", cfg.Digits, r.ErrPct)
			exact = fmt.Sprintf("%.*g", cfg.Digits, r.Exact)
		}
		if r.Partial {
			errCell += " (halted)"
		}
		fmt.Fprintf(w, "%g\t%d\t%g\t%.*g\t%s\t%s\n", r.H, r.Steps, r.FinalX, cfg.Digits, r.FinalY, exact, errCell)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if chart, err := viz.ConvergencePlot(results, viz.PlotOptions{Width: cfg.Plot.Width, Height: cfg.Plot.Height}); err == nil {
		fmt.Fprintln(out, "\n"+chart)
	}
	return nil
}

func runPerturb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg.ToRequest(),
		Variant:      variant,
		Perturbation: spread,
		NumTrials:    trials,
		Seed:         seed,
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, sim.New(sim.WithLogger(logger)), logger)
	if err != nil {
		return err
	}

	st := automation.Summarize(results)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "y' = %s, y0 = %g ± %g, %d trials (%s)\n", cfg.Expression, cfg.Y0, spread, len(results), variant)
	fmt.Fprintf(out, "  completed  %d\n", st.Completed)
	fmt.Fprintf(out, "  halted     %d\n", st.Halted)
	if st.Completed > 0 {
		fmt.Fprintf(out, "  y(x_end)   min %.*g  mean %.*g  max %.*g  sd %.*g\n",
			cfg.Digits, st.MinFinal, cfg.Digits, st.MeanFinal, cfg.Digits, st.MaxFinal, cfg.Digits, st.StdDevFinal)

		finals := make([]float64, 0, st.Completed)
		for _, r := range results {
			if r.Completed {
				finals = append(finals, r.FinalY)
			}
		}
		fmt.Fprintf(out, "  spread     %s\n", viz.SparklineChart(finals, min(len(finals), cfg.Plot.Width)))
	}
	return nil
}
