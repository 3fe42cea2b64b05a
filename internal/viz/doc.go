// Package viz renders solve results in the terminal.
//
// Static output:
//
//   - [Table]: side-by-side comparison of every variant against the exact curve
//   - [Summary]: parameters, closed form and per-variant error metrics
//   - [SolutionPlot], [ErrorPlot], [ConvergencePlot]: asciigraph charts
//
// [Model] is a Bubble Tea browser over a single result.
//
// # Key Bindings
//
//	Tab   - Next variant
//	P     - Cycle table / solution plot / error plot
//	T     - Cycle color themes
//	Up/K  - Scroll up
//	Down/J- Scroll down
//	?     - Show help overlay
//	Q     - Quit
package viz
