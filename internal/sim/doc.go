// Package sim orchestrates one solve of the initial value problem
// y' = f(x, y), y(x0) = y0.
//
// A run moves through fixed stages, each a pure function of the previous
// one's output:
//
//   - [StageValidated]: the [Request] passed validation
//   - [StageCompiled]: the expression compiled
//   - [StageExactAttempted]: the symbolic solver ran
//   - [StageTrajectories]: every method variant was integrated
//   - [StageErrors]: each point was compared with the exact curve
//   - [StageReady]: the [Result] is complete
//
// Validation and parse failures stop the run and return an error. An
// evaluation failure inside a trajectory does not: that trajectory halts
// and the Result reports itself as partial.
//
// # Example
//
//	s := sim.New(sim.WithLogger(logger))
//	res, err := s.Solve(ctx, sim.Request{
//		Expression: "-2*x*y",
//		X0: 0, Y0: 1, XEnd: 1, H: 0.1,
//		Method: sim.MethodHeun, Iterations: 1, Digits: 6,
//	})
//	rows, _ := res.Rows(sim.VariantHeun)
//
// A Simulator holds no per-run state and may be reused.
package sim
