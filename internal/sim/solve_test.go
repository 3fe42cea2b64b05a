package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odesim/internal/expr"
	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/sim"
)

var _ = Describe("Simulator.Solve", func() {
	var (
		s   *sim.Simulator
		ctx context.Context
	)

	BeforeEach(func() {
		s = sim.New()
		ctx = context.Background()
	})

	Describe("the gaussian equation with Heun", func() {
		var res *sim.Result

		BeforeEach(func() {
			var err error
			res, err = s.Solve(ctx, sim.Request{
				Expression: "-2*x*y",
				X0:         0, Y0: 1, XEnd: 1, H: 0.1,
				Method: sim.MethodHeun, Iterations: 1, Digits: 6,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("finds the closed form exp(-x^2)", func() {
			Expect(res.Exact).NotTo(BeNil())
			Expect(res.Exact.Expr.String()).To(Equal("exp(-x^2)"))
		})

		It("has zero error at the initial condition", func() {
			v, ok := res.Variant(sim.VariantHeun)
			Expect(ok).To(BeTrue())
			Expect(v.Records[0].Status).To(Equal(metrics.StatusOK))
			Expect(v.Records[0].RelErrPct).To(BeZero())
		})

		It("keeps the error at x=1 in single-digit percent", func() {
			v, _ := res.Variant(sim.VariantHeun)
			last := v.Records[len(v.Records)-1]
			Expect(last.X).To(BeNumerically("~", 1, 1e-12))
			Expect(last.Status).To(Equal(metrics.StatusOK))
			Expect(last.RelErrPct).To(BeNumerically(">", 0))
			Expect(last.RelErrPct).To(BeNumerically("<", 10))
			Expect(v.Summary).To(HaveKey("max_error_pct"))
		})
	})

	Describe("an evaluation failure on the first step", func() {
		var res *sim.Result

		BeforeEach(func() {
			var err error
			res, err = s.Solve(ctx, sim.Request{
				Expression: "1/y",
				X0:         0, Y0: 0, XEnd: 1, H: 0.25,
				Method: sim.MethodBoth, Iterations: 1, Digits: 6,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("marks the run as partial", func() {
			Expect(res.Partial()).To(BeTrue())
		})

		It("keeps point 0 and records the failure at point 1", func() {
			for _, name := range []string{sim.VariantEuler, sim.VariantHeun} {
				v, ok := res.Variant(name)
				Expect(ok).To(BeTrue())

				tr := v.Trajectory
				Expect(tr.Points).To(HaveLen(1))
				Expect(tr.Points[0].Y).To(BeZero())
				Expect(tr.Failure).NotTo(BeNil())
				Expect(tr.Failure.Index).To(Equal(1))
				Expect(tr.Failure.Err).To(MatchError(expr.ErrDomain))

				rows, err := res.Rows(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(HaveLen(2))
				Expect(rows[1].Failed()).To(BeTrue())
				Expect(rows[1].Err).To(ContainSubstring("division by zero"))
			}
		})
	})

	Describe("trajectory properties", func() {
		DescribeTable("point count and initial point",
			func(src string, x0, xEnd, h float64) {
				res, err := s.Solve(ctx, sim.Request{
					Expression: src,
					X0:         x0, Y0: 0.5, XEnd: xEnd, H: h,
					Method: sim.MethodBoth, Iterations: 2, Digits: 6,
				})
				Expect(err).NotTo(HaveOccurred())

				want := int(math.Ceil((xEnd-x0)/h-1e-9)) + 1
				for _, v := range res.Variants {
					Expect(v.Trajectory.Points).To(HaveLen(want), v.Name)
					Expect(v.Trajectory.Points[0].X).To(Equal(x0))
					Expect(v.Trajectory.Points[0].Y).To(Equal(0.5))
				}
			},
			Entry("integral ratio", "x + y", 0.0, 1.0, 0.1),
			Entry("ratio with rounding", "x - y", 0.0, 0.3, 0.1),
			Entry("non-integral ratio", "sin(x)*y", 0.0, 1.0, 0.3),
			Entry("shifted start", "-y", -2.0, 3.0, 0.5),
		)

		It("is idempotent", func() {
			req := sim.Request{
				Expression: "y*(1-y)",
				X0:         0, Y0: 0.1, XEnd: 2, H: 0.05,
				Method: sim.MethodBoth, Iterations: 4, Digits: 6,
			}
			a, err := s.Solve(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			b, err := s.Solve(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.RunID).NotTo(Equal(b.RunID))
			for i, v := range a.Variants {
				Expect(v.Trajectory.Points).To(Equal(b.Variants[i].Trajectory.Points))
			}
		})

		It("engages the Heun corrector when f depends on y", func() {
			res, err := s.Solve(ctx, sim.Request{
				Expression: "x + y",
				X0:         0, Y0: 1, XEnd: 1, H: 0.1,
				Method: sim.MethodBoth, Iterations: 1, Digits: 6,
			})
			Expect(err).NotTo(HaveOccurred())

			euler, _ := res.Variant(sim.VariantEuler)
			heun, _ := res.Variant(sim.VariantHeun)
			Expect(heun.Trajectory.Last().Y).NotTo(Equal(euler.Trajectory.Last().Y))
		})

		It("only changes the iterated variant when iterations grow", func() {
			req := sim.Request{
				Expression: "-2*x*y",
				X0:         0, Y0: 1, XEnd: 1, H: 0.1,
				Method: sim.MethodBoth, Iterations: 1, Digits: 6,
			}
			one, err := s.Solve(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			req.Iterations = 5
			five, err := s.Solve(ctx, req)
			Expect(err).NotTo(HaveOccurred())

			for _, name := range []string{sim.VariantEuler, sim.VariantHeun} {
				a, _ := one.Variant(name)
				b, _ := five.Variant(name)
				Expect(b.Trajectory.Points).To(Equal(a.Trajectory.Points), name)
			}

			_, ok := one.Variant(sim.VariantHeunIterated)
			Expect(ok).To(BeFalse())
			iterated, ok := five.Variant(sim.VariantHeunIterated)
			Expect(ok).To(BeTrue())
			simple, _ := five.Variant(sim.VariantHeun)
			Expect(iterated.Trajectory.Last().Y).NotTo(Equal(simple.Trajectory.Last().Y))
		})
	})

	Describe("equations without a closed form", func() {
		It("reports every record as no-exact", func() {
			res, err := s.Solve(ctx, sim.Request{
				Expression: "y*(1-y)",
				X0:         0, Y0: 0.1, XEnd: 1, H: 0.1,
				Method: sim.MethodEuler, Digits: 4,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Exact).To(BeNil())
			Expect(res.SolverErr).NotTo(HaveOccurred())

			v, _ := res.Variant(sim.VariantEuler)
			for _, r := range v.Records {
				Expect(r.Status).To(Equal(metrics.StatusNoExact))
			}
			Expect(v.Summary).NotTo(HaveKey("max_error_pct"))
		})
	})

	Describe("near-zero exact values", func() {
		It("never surfaces Inf or NaN", func() {
			res, err := s.Solve(ctx, sim.Request{
				Expression: "cos(x)",
				X0:         0, Y0: 0, XEnd: 1, H: 0.1,
				Method: sim.MethodHeun, Iterations: 1, Digits: 6,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Exact).NotTo(BeNil())

			v, _ := res.Variant(sim.VariantHeun)
			Expect(v.Records[0].Status).To(Equal(metrics.StatusNearZero))
			for _, r := range v.Records {
				Expect(math.IsNaN(r.RelErrPct)).To(BeFalse())
				Expect(math.IsInf(r.RelErrPct, 0)).To(BeFalse())
			}
		})
	})
})
