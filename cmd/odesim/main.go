package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/odesim/internal/config"
	"github.com/san-kum/odesim/internal/expr"
	"github.com/san-kum/odesim/internal/integrators"
	"github.com/san-kum/odesim/internal/viz"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	theme      string
	preset     string

	x0         float64
	y0         float64
	xEnd       float64
	h          float64
	method     string
	iterations int
	digits     int
	maxSteps   int
	tolerance  float64

	plotWidth  int
	plotHeight int

	hMin     float64
	hMax     float64
	numSteps int
	variant  string

	trials int
	spread float64
	seed   int64

	addr string
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "odesim",
		Short: "first-order ODE lab: Euler and Heun against the exact solution",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeLab.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	solveCmd := &cobra.Command{
		Use:   "solve [expression]",
		Short: "solve y' = f(x, y) and print the comparison table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [expression]",
		Short: "plot the solution and the relative error",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	addProblemFlags(plotCmd)
	addPlotFlags(plotCmd)

	viewCmd := &cobra.Command{
		Use:   "view [expression]",
		Short: "browse a result interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	addProblemFlags(viewCmd)

	exportCmd := &cobra.Command{
		Use:       "export [csv|json|svg] [expression]",
		Short:     "write a result to stdout",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"csv", "json", "svg"},
		RunE:      runExport,
	}
	addProblemFlags(exportCmd)
	addPlotFlags(exportCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [expression]",
		Short: "shrink h and report the final error of one variant",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	addPlotFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&hMax, "h-max", 0.1, "largest step size")
	sweepCmd.Flags().Float64Var(&hMin, "h-min", 0.0125, "smallest step size")
	sweepCmd.Flags().IntVar(&numSteps, "n", 4, "number of step sizes")
	sweepCmd.Flags().StringVar(&variant, "variant", "heun", "variant to measure")

	perturbCmd := &cobra.Command{
		Use:   "perturb [expression]",
		Short: "perturb y0 at random and report the spread of y(x_end)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPerturb,
	}
	addProblemFlags(perturbCmd)
	perturbCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	perturbCmd.Flags().Float64Var(&spread, "spread", 0.01, "maximum absolute change to y0")
	perturbCmd.Flags().Int64Var(&seed, "seed", 1, "random seed (0 seeds from the clock)")
	perturbCmd.Flags().StringVar(&variant, "variant", "heun", "variant to measure")

	presetsCmd := &cobra.Command{
		Use:   "presets [group]",
		Short: "list preset equations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			groups := config.ListGroups()
			if len(args) == 1 {
				if config.ListPresets(args[0]) == nil {
					return fmt.Errorf("unknown preset group: %s (available: %v)", args[0], groups)
				}
				groups = args
			}
			for _, g := range groups {
				fmt.Fprintf(out, "%s:\n", g)
				for _, name := range config.ListPresets(g) {
					p := config.GetPreset(g, name)
					fmt.Fprintf(out, "  %-10s y' = %s, y(%g) = %g on [%g, %g]\n", name, p.Expression, p.X0, p.Y0, p.X0, p.XEnd)
				}
			}
			return nil
		},
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list step methods",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range integrators.NewRegistry().List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	functionsCmd := &cobra.Command{
		Use:   "functions",
		Short: "list functions and constants allowed in expressions",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Join(expr.FunctionNames(), " "))
			fmt.Fprintln(out, "constants: pi e")
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(solveCmd, plotCmd, viewCmd, exportCmd, batchCmd, sweepCmd, perturbCmd, presetsCmd, methodsCmd, functionsCmd, serveCmd)
	return rootCmd
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset equation")
	cmd.Flags().Float64Var(&x0, "x0", config.DefaultX0, "initial x")
	cmd.Flags().Float64Var(&y0, "y0", config.DefaultY0, "initial y")
	cmd.Flags().Float64Var(&xEnd, "x-end", config.DefaultXEnd, "end of the interval")
	cmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "euler, heun or both")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "heun corrector passes")
	cmd.Flags().IntVar(&digits, "digits", config.DefaultDigits, "significant digits in output")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "step budget (0 = default)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "also report the share of points within this % error")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&plotWidth, "width", config.DefaultPlotWidth, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", config.DefaultPlotHeight, "plot height")
}
