// Package solver drives the time integration of the advection-
// diffusion equation over a fixed number of steps.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/advdiff/internal/field"
	"github.com/san-kum/advdiff/internal/integrate"
	"github.com/san-kum/advdiff/internal/stencil"
)

// Config fixes the simulated time span. The step size is derived as
// TEnd/Steps; stability against the stencil's explicit limit is the
// caller's responsibility.
type Config struct {
	TEnd  float64
	Steps int
}

// Metric observes the evolving field once per step.
type Metric interface {
	Name() string
	Observe(u *field.Grid, t float64)
	Value() float64
	Reset()
}

// Result summarizes one completed run.
type Result struct {
	Steps      int
	TEnd       float64
	Wall       time.Duration
	WallPerDoF float64 // seconds per step per interior cell
	Metrics    map[string]float64
}

// Solver owns an operator and an integrator for the duration of one
// or more runs. It is not safe for concurrent use.
type Solver struct {
	op      *stencil.Operator
	integ   integrate.Integrator
	metrics []Metric
}

func New(op *stencil.Operator, integ integrate.Integrator) *Solver {
	return &Solver{op: op, integ: integ}
}

func (s *Solver) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Solver) validateConfig(cfg Config) error {
	if cfg.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", cfg.Steps)
	}
	if cfg.TEnd < 0 {
		return fmt.Errorf("end time must be non-negative, got %f", cfg.TEnd)
	}
	return nil
}

// Run advances u in place through exactly cfg.Steps integration steps.
// Simulated time is recomputed as (i+1)*dt each step rather than
// accumulated, avoiding floating drift. The run is one-shot: any error
// aborts it, nothing retries.
func (s *Solver) Run(ctx context.Context, u *field.Grid, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	dt := cfg.TEnd / float64(cfg.Steps)

	for _, m := range s.metrics {
		m.Reset()
	}
	t := 0.0
	for _, m := range s.metrics {
		m.Observe(u, t)
	}

	start := time.Now()
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := s.integ.Step(s.op, u, t, dt); err != nil {
			return nil, fmt.Errorf("step %d (t=%.6f): %w", i, t, err)
		}
		t = float64(i+1) * dt

		for _, m := range s.metrics {
			m.Observe(u, t)
		}
	}
	wall := time.Since(start)

	res := &Result{
		Steps:      cfg.Steps,
		TEnd:       cfg.TEnd,
		Wall:       wall,
		WallPerDoF: wall.Seconds() / float64(cfg.Steps*u.NX()*u.NY()),
		Metrics:    make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
