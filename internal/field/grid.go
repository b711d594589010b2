package field

import (
	"errors"
	"fmt"
)

// Halo is the width of the periodic margin on every side of the
// interior. Two cells support stencils reaching offsets -2..2.
const Halo = 2

// Domain errors for grid operations.
var (
	// ErrShapeMismatch indicates a binary operation on grids with
	// differing interior dimensions.
	ErrShapeMismatch = errors.New("field: grid shape mismatch")
)

// Grid is a 2-D scalar field on the unit square with a periodic halo
// margin. Interior coordinates run x in [0,nX), y in [0,nY); halo
// offsets up to Halo cells beyond either end are addressable.
type Grid struct {
	nX, nY   int
	nXH, nYH int
	data     []float64
}

// New allocates a zeroed grid with the given interior dimensions.
func New(nX, nY int) *Grid {
	if nX < 1 || nY < 1 {
		panic(fmt.Sprintf("field: non-positive grid dimensions %dx%d", nX, nY))
	}
	nXH, nYH := nX+2*Halo, nY+2*Halo
	return &Grid{
		nX:   nX,
		nY:   nY,
		nXH:  nXH,
		nYH:  nYH,
		data: make([]float64, nXH*nYH),
	}
}

func (g *Grid) NX() int { return g.nX }
func (g *Grid) NY() int { return g.nY }

func (g *Grid) idx(x, y int) int {
	if x < -Halo || x >= g.nX+Halo || y < -Halo || y >= g.nY+Halo {
		panic(fmt.Sprintf("field: index (%d,%d) outside halo of %dx%d grid", x, y, g.nX, g.nY))
	}
	return (x + Halo) + (y+Halo)*g.nXH
}

// At returns the value at (x,y). Coordinates may reach up to Halo
// cells into the margin; anything beyond panics.
func (g *Grid) At(x, y int) float64 { return g.data[g.idx(x, y)] }

// Set writes the value at (x,y), with the same bounds as At.
func (g *Grid) Set(x, y int, v float64) { g.data[g.idx(x, y)] = v }

// SameShape reports whether both grids have identical interior
// dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.nX == o.nX && g.nY == o.nY
}

func (g *Grid) checkShape(o *Grid) error {
	if !g.SameShape(o) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, g.nX, g.nY, o.nX, o.nY)
	}
	return nil
}

// Clone returns a deep copy, halo included.
func (g *Grid) Clone() *Grid {
	c := New(g.nX, g.nY)
	copy(c.data, g.data)
	return c
}

// Assign copies the interior of o into g.
func (g *Grid) Assign(o *Grid) error {
	if err := g.checkShape(o); err != nil {
		return err
	}
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			g.data[g.idx(x, y)] = o.data[o.idx(x, y)]
		}
	}
	return nil
}

// Add accumulates o into g elementwise over the interior.
func (g *Grid) Add(o *Grid) error {
	if err := g.checkShape(o); err != nil {
		return err
	}
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			g.data[g.idx(x, y)] += o.data[o.idx(x, y)]
		}
	}
	return nil
}

// Scale multiplies every interior value by factor.
func (g *Grid) Scale(factor float64) {
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			g.data[g.idx(x, y)] *= factor
		}
	}
}

// Aypx computes g = factor*g + o over the interior. Used to form the
// intermediate stage inputs of the time stepper without an extra
// temporary.
func (g *Grid) Aypx(factor float64, o *Grid) error {
	if err := g.checkShape(o); err != nil {
		return err
	}
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			i := g.idx(x, y)
			g.data[i] = factor*g.data[i] + o.data[o.idx(x, y)]
		}
	}
	return nil
}

// Axpy computes g = g + factor*o over the interior. Used to
// accumulate weighted stage contributions.
func (g *Grid) Axpy(factor float64, o *Grid) error {
	if err := g.checkShape(o); err != nil {
		return err
	}
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			g.data[g.idx(x, y)] += factor * o.data[o.idx(x, y)]
		}
	}
	return nil
}

// RefreshHalo fills the halo margin from the opposite-edge interior,
// implementing periodic wrap on both axes.
//
// The y-axis pass covers interior columns only; the x-axis pass then
// covers the full extended column range, so the corner cells pick up
// already-wrapped values and end up consistent with a diagonal wrap.
func (g *Grid) RefreshHalo() {
	for x := 0; x < g.nX; x++ {
		for s := 1; s <= Halo; s++ {
			g.data[g.idx(x, -s)] = g.data[g.idx(x, g.nY-s)]
			g.data[g.idx(x, g.nY+(s-1))] = g.data[g.idx(x, s-1)]
		}
	}
	for y := -Halo; y < g.nY+Halo; y++ {
		for s := 1; s <= Halo; s++ {
			g.data[g.idx(-s, y)] = g.data[g.idx(g.nX-s, y)]
			g.data[g.idx(g.nX+(s-1), y)] = g.data[g.idx(s-1, y)]
		}
	}
}

// Each visits every interior cell in row-major order (y rows outer,
// x inner), matching the on-disk layout of the text codec.
func (g *Grid) Each(fn func(x, y int, v float64)) {
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			fn(x, y, g.data[g.idx(x, y)])
		}
	}
}

// Interior returns a copy of the interior values in row-major order.
func (g *Grid) Interior() []float64 {
	out := make([]float64, 0, g.nX*g.nY)
	g.Each(func(_, _ int, v float64) {
		out = append(out, v)
	})
	return out
}

// Fill populates the interior from normalized coordinates
// (x/nX, y/nY) in [0,1).
func (g *Grid) Fill(fn func(xn, yn float64) float64) {
	dX, dY := 1/float64(g.nX), 1/float64(g.nY)
	for y := 0; y < g.nY; y++ {
		for x := 0; x < g.nX; x++ {
			g.data[g.idx(x, y)] = fn(float64(x)*dX, float64(y)*dY)
		}
	}
}
