// Package integrate provides explicit fixed-step time integrators for
// the advection-diffusion solver.
package integrate

import (
	"fmt"

	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/stencil"
)

// Integrator advances a solution grid in place by one step of size dt.
type Integrator interface {
	Name() string
	Step(op *stencil.Operator, u *field.Grid, t, dt float64) error
}

// ByName resolves an integrator by its external name.
func ByName(name string) (Integrator, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %q (available: rk4, euler)", name)
	}
}
