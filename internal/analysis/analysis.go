// Package analysis provides error norms against known analytic
// solutions and the grid-convergence study built on them.
package analysis

import (
	"context"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/integrate"
	"github.com/san-kum/advdiff/internal/solver"
	"github.com/san-kum/advdiff/internal/stencil"
)

// SinusDiagonal returns the analytic solution of the sinus initial
// condition advected by the diagonal unit flow with diffusivity nu at
// time t:
//
//	u(x,y,t) = exp(-8 pi^2 nu t) sin(2 pi (x-t)) sin(2 pi (y-t))
func SinusDiagonal(nX, nY int, t, nu float64) *field.Grid {
	g := field.New(nX, nY)
	decay := math.Exp(-8 * math.Pi * math.Pi * nu * t)
	g.Fill(func(xn, yn float64) float64 {
		return decay * math.Sin(2*math.Pi*(xn-t)) * math.Sin(2*math.Pi*(yn-t))
	})
	return g
}

// L2Diff is the grid-weighted L2 norm of a-b over the interior.
func L2Diff(a, b *field.Grid) (float64, error) {
	if !a.SameShape(b) {
		return 0, field.ErrShapeMismatch
	}
	av, bv := a.Interior(), b.Interior()
	return floats.Distance(av, bv, 2) / math.Sqrt(float64(len(av))), nil
}

// MaxDiff is the max-norm of a-b over the interior.
func MaxDiff(a, b *field.Grid) (float64, error) {
	if !a.SameShape(b) {
		return 0, field.ErrShapeMismatch
	}
	return floats.Distance(a.Interior(), b.Interior(), math.Inf(1)), nil
}

// Sample is one grid level of a convergence study.
type Sample struct {
	N      int
	ErrL2  float64
	ErrMax float64
}

// Convergence integrates the sinus/diagonal scenario on each grid size
// with the step count held fixed, and measures the error against the
// analytic solution. With dt fixed and inside the stability limit the
// temporal error is common to all levels, so the error ratio between
// levels exposes the spatial order.
func Convergence(ctx context.Context, sizes []int, tEnd float64, steps int, nu float64) ([]Sample, error) {
	samples := make([]Sample, 0, len(sizes))
	for _, n := range sizes {
		u := field.New(n, n)
		u.Populate(field.InitSinus)

		op := stencil.NewOperator(stencil.NewCoeffs(n, n, stencil.FlowDiagonal, nu))
		s := solver.New(op, integrate.NewRK4())
		if _, err := s.Run(ctx, u, solver.Config{TEnd: tEnd, Steps: steps}); err != nil {
			return nil, err
		}

		exact := SinusDiagonal(n, n, tEnd, nu)
		l2, err := L2Diff(u, exact)
		if err != nil {
			return nil, err
		}
		max, err := MaxDiff(u, exact)
		if err != nil {
			return nil, err
		}
		samples = append(samples, Sample{N: n, ErrL2: l2, ErrMax: max})
	}
	return samples, nil
}

// Orders estimates the observed convergence order between consecutive
// samples from the L2 errors. A fourth-order discretization should
// approach 4.
func Orders(samples []Sample) []float64 {
	orders := make([]float64, 0, len(samples)-1)
	for i := 1; i < len(samples); i++ {
		ratio := samples[i-1].ErrL2 / samples[i].ErrL2
		refine := float64(samples[i].N) / float64(samples[i-1].N)
		orders = append(orders, math.Log(ratio)/math.Log(refine))
	}
	return orders
}
