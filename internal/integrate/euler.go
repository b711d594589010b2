package integrate

import (
	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/stencil"
)

// Euler is the explicit first-order stepper. Kept for accuracy and
// cost comparisons against RK4; it needs a much smaller dt for the
// same stability margin.
type Euler struct {
	k *field.Grid
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(op *stencil.Operator, u *field.Grid, t, dt float64) error {
	if e.k == nil || !e.k.SameShape(u) {
		e.k = field.New(u.NX(), u.NY())
	}
	if err := op.Apply(u, e.k); err != nil {
		return err
	}
	return u.Axpy(dt, e.k)
}
