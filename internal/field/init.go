package field

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownInit indicates an initial-condition name outside the
// supported set.
var ErrUnknownInit = errors.New("field: unknown initial condition")

// Init selects one of the built-in initial-condition profiles.
type Init int

const (
	// InitGauss is a Gaussian bump centered at (0.25, 0.25).
	InitGauss Init = iota
	// InitSinus is a product of sine waves, one period per axis.
	InitSinus
	// InitCross is the half-sum of two Gaussian ridges crossing at
	// the domain center.
	InitCross
	// InitCross2 is the elementwise maximum of the same two ridges.
	InitCross2
)

var initNames = map[Init]string{
	InitGauss:  "gauss",
	InitSinus:  "sinus",
	InitCross:  "cross",
	InitCross2: "cross2",
}

func (ic Init) String() string {
	if s, ok := initNames[ic]; ok {
		return s
	}
	return fmt.Sprintf("Init(%d)", int(ic))
}

// ParseInit maps an external name onto the closed Init set.
func ParseInit(s string) (Init, error) {
	for ic, name := range initNames {
		if name == s {
			return ic, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInit, s)
}

// InitNames lists the supported initial-condition names.
func InitNames() []string {
	return []string{"gauss", "sinus", "cross", "cross2"}
}

// Populate fills the interior with the selected profile as a pure
// function of normalized coordinates.
func (g *Grid) Populate(ic Init) {
	switch ic {
	case InitGauss:
		g.Fill(func(xn, yn float64) float64 {
			return math.Exp(-200 * ((xn-0.25)*(xn-0.25) + (yn-0.25)*(yn-0.25)))
		})
	case InitSinus:
		g.Fill(func(xn, yn float64) float64 {
			return math.Sin(2*math.Pi*xn) * math.Sin(2*math.Pi*yn)
		})
	case InitCross:
		g.Fill(func(xn, yn float64) float64 {
			return 0.5 * (ridge(xn) + ridge(yn))
		})
	case InitCross2:
		g.Fill(func(xn, yn float64) float64 {
			return math.Max(ridge(xn), ridge(yn))
		})
	default:
		panic(fmt.Sprintf("field: invalid init %d", int(ic)))
	}
}

// ridge is a 1-D Gaussian centered at 0.5, shared by the cross
// profiles.
func ridge(t float64) float64 {
	return math.Exp(-200 * (t - 0.5) * (t - 0.5))
}
