package solver

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/advdiff/internal/field"
)

// Mass tracks the discrete integral of the field over the unit square.
// Advection and diffusion on a periodic domain both conserve it, so a
// drifting mass flags an unstable or miscoded run.
type Mass struct {
	value float64
}

func NewMass() *Mass { return &Mass{} }

func (m *Mass) Name() string { return "mass" }

func (m *Mass) Observe(u *field.Grid, t float64) {
	cell := 1 / float64(u.NX()*u.NY())
	m.value = floats.Sum(u.Interior()) * cell
}

func (m *Mass) Value() float64 { return m.value }

func (m *Mass) Reset() { m.value = 0 }

// Extremes records the largest absolute value the field reaches over
// the whole run. A purely advective-diffusive solution should never
// overshoot its initial range by much; growth signals a dt beyond the
// stability limit.
type Extremes struct {
	maxAbs   float64
	observed bool
}

func NewExtremes() *Extremes { return &Extremes{} }

func (e *Extremes) Name() string { return "max_abs" }

func (e *Extremes) Observe(u *field.Grid, t float64) {
	v := u.Interior()
	hi, lo := floats.Max(v), floats.Min(v)
	if -lo > hi {
		hi = -lo
	}
	if !e.observed || hi > e.maxAbs {
		e.maxAbs = hi
		e.observed = true
	}
}

func (e *Extremes) Value() float64 { return e.maxAbs }

func (e *Extremes) Reset() {
	e.maxAbs = 0
	e.observed = false
}
