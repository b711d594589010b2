package solver_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/integrate"
	"github.com/san-kum/advdiff/internal/solver"
	"github.com/san-kum/advdiff/internal/stencil"
)

func newSolver(n int, flow stencil.Flow, nu float64) *solver.Solver {
	op := stencil.NewOperator(stencil.NewCoeffs(n, n, flow, nu))
	return solver.New(op, integrate.NewRK4())
}

var _ = Describe("Run", func() {
	It("leaves the field unchanged when no time elapses", func() {
		u := field.New(4, 4)
		u.Populate(field.InitGauss)
		before := u.Interior()

		s := newSolver(4, stencil.FlowDiagonal, 0)
		res, err := s.Run(context.Background(), u, solver.Config{TEnd: 0, Steps: 1})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(1))
		Expect(u.Interior()).To(Equal(before))
	})

	It("keeps a uniform field uniform under any flow", func() {
		const c = 2.5
		u := field.New(16, 16)
		u.Fill(func(_, _ float64) float64 { return c })

		s := newSolver(16, stencil.FlowCircular2, 0.0005)
		_, err := s.Run(context.Background(), u, solver.Config{TEnd: 0.01, Steps: 10})

		Expect(err).NotTo(HaveOccurred())
		for _, v := range u.Interior() {
			Expect(v).To(BeNumerically("~", c, 1e-12))
		}
	})

	It("is deterministic across repeated runs", func() {
		run := func() []float64 {
			u := field.New(24, 24)
			u.Populate(field.InitCross)
			s := newSolver(24, stencil.FlowCircular, 0.0004)
			_, err := s.Run(context.Background(), u, solver.Config{TEnd: 0.02, Steps: 40})
			Expect(err).NotTo(HaveOccurred())
			return u.Interior()
		}

		Expect(run()).To(Equal(run()))
	})

	It("rejects a non-positive step count", func() {
		u := field.New(4, 4)
		s := newSolver(4, stencil.FlowDiagonal, 0)

		_, err := s.Run(context.Background(), u, solver.Config{TEnd: 1, Steps: 0})
		Expect(err).To(HaveOccurred())
	})

	It("rejects a negative end time", func() {
		u := field.New(4, 4)
		s := newSolver(4, stencil.FlowDiagonal, 0)

		_, err := s.Run(context.Background(), u, solver.Config{TEnd: -1, Steps: 10})
		Expect(err).To(HaveOccurred())
	})

	It("fails fast on a grid that does not match the operator", func() {
		u := field.New(8, 8)
		u.Populate(field.InitGauss)

		s := newSolver(4, stencil.FlowDiagonal, 0)
		_, err := s.Run(context.Background(), u, solver.Config{TEnd: 0.1, Steps: 10})

		Expect(err).To(MatchError(field.ErrShapeMismatch))
	})

	It("stops when the context is canceled", func() {
		u := field.New(8, 8)
		u.Populate(field.InitGauss)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := newSolver(8, stencil.FlowDiagonal, 0)
		_, err := s.Run(ctx, u, solver.Config{TEnd: 1, Steps: 100})

		Expect(err).To(MatchError(context.Canceled))
	})

	It("reports registered metrics", func() {
		u := field.New(16, 16)
		u.Populate(field.InitSinus)

		s := newSolver(16, stencil.FlowDiagonal, 0)
		s.AddMetric(solver.NewMass())
		s.AddMetric(solver.NewExtremes())

		res, err := s.Run(context.Background(), u, solver.Config{TEnd: 0.01, Steps: 10})
		Expect(err).NotTo(HaveOccurred())

		// the sine product integrates to zero over the periodic square
		Expect(res.Metrics).To(HaveKey("mass"))
		Expect(res.Metrics["mass"]).To(BeNumerically("~", 0, 1e-12))
		Expect(res.Metrics).To(HaveKey("max_abs"))
		Expect(res.Metrics["max_abs"]).To(BeNumerically(">", 0.9))
		Expect(res.Wall).To(BeNumerically(">", 0))
	})
})
