package stencil

import (
	"fmt"

	"github.com/san-kum/advdiff/internal/field"
)

// parallelMinRows is the interior row count below which Apply runs
// sequentially. Small grids are not worth the goroutine fan-out.
const parallelMinRows = 64

// Operator evaluates the spatial right-hand side
//
//	out(x,y) = sum_s X(s,x,y)*u(x+s,y) + Y(s,x,y)*u(x,y+s)
//
// for a fixed coefficient table. The table stays read-only during
// evaluation, so one Operator may serve many steps.
type Operator struct {
	coeffs *Coeffs
}

// NewOperator wraps a coefficient table.
func NewOperator(c *Coeffs) *Operator {
	return &Operator{coeffs: c}
}

func (op *Operator) Coeffs() *Coeffs { return op.coeffs }

func (op *Operator) checkShape(g *field.Grid) error {
	if g.NX() != op.coeffs.nX || g.NY() != op.coeffs.nY {
		return fmt.Errorf("%w: grid %dx%d vs coefficients %dx%d",
			field.ErrShapeMismatch, g.NX(), g.NY(), op.coeffs.nX, op.coeffs.nY)
	}
	return nil
}

// Apply refreshes the halo of u and writes the right-hand side into
// out. Both grids must match the coefficient table's interior
// dimensions. The halo refresh completes before any row is evaluated;
// rows are then independent and run in parallel on large grids.
func (op *Operator) Apply(u, out *field.Grid) error {
	if err := op.checkShape(u); err != nil {
		return err
	}
	if err := op.checkShape(out); err != nil {
		return err
	}

	u.RefreshHalo()

	c := op.coeffs
	parallelFor(c.nY, parallelMinRows, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < c.nX; x++ {
				sum := 0.0
				for s := -Reach; s <= Reach; s++ {
					sum += c.X(s, x, y)*u.At(x+s, y) + c.Y(s, x, y)*u.At(x, y+s)
				}
				out.Set(x, y, sum)
			}
		}
	})
	return nil
}
