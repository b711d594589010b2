package stencil

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownFlow indicates a flow-regime name outside the supported
// set.
var ErrUnknownFlow = errors.New("stencil: unknown flow regime")

// Flow selects the velocity field used to build a coefficient table.
type Flow int

const (
	// FlowDiagonal is a spatially uniform unit velocity along both
	// axes.
	FlowDiagonal Flow = iota
	// FlowCircular is a single decaying vortex around the domain
	// center.
	FlowCircular
	// FlowCircular2 adds a radial sin(4*pi*r) modulation, producing a
	// ring-like multi-lobed swirl.
	FlowCircular2
)

var flowNames = map[Flow]string{
	FlowDiagonal:  "diagonal",
	FlowCircular:  "circular",
	FlowCircular2: "circular2",
}

func (f Flow) String() string {
	if s, ok := flowNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Flow(%d)", int(f))
}

// ParseFlow maps an external name onto the closed Flow set.
func ParseFlow(s string) (Flow, error) {
	for f, name := range flowNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlow, s)
}

// FlowNames lists the supported flow-regime names.
func FlowNames() []string {
	return []string{"diagonal", "circular", "circular2"}
}

// velocity returns the (vx, vy) components at normalized coordinates
// (xn, yn) in [0,1).
func (f Flow) velocity(xn, yn float64) (vx, vy float64) {
	switch f {
	case FlowDiagonal:
		return 1, 1
	case FlowCircular:
		r := math.Hypot(xn-0.5, yn-0.5)
		phi := math.Atan2(yn-0.5, xn-0.5)
		rho := math.Exp(-10 * r * r)
		vx = -r * 2 * math.Pi * math.Sin(phi) * rho
		vy = r * 2 * math.Pi * math.Cos(phi) * rho
		return vx, vy
	case FlowCircular2:
		r := math.Hypot(xn-0.5, yn-0.5)
		phi := math.Atan2(yn-0.5, xn-0.5)
		mod := math.Sin(4 * math.Pi * r)
		rho := math.Exp(-5 * r * r)
		vx = -r * 2 * math.Pi * math.Sin(phi) * mod * rho
		vy = r * 2 * math.Pi * math.Cos(phi) * mod * rho
		return vx, vy
	default:
		panic(fmt.Sprintf("stencil: invalid flow %d", int(f)))
	}
}
