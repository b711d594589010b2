// Package stencil holds the discretized spatial operator of the 2-D
// advection-diffusion equation: per-cell fourth-order finite-difference
// coefficients and their application to a halo-padded field.
package stencil

import (
	"fmt"

	"github.com/san-kum/advdiff/internal/field"
)

// Reach is the stencil half-width; offsets run -Reach..Reach along
// each axis. It matches the field halo so evaluation never leaves the
// refreshed margin.
const Reach = field.Halo

// Fourth-order five-point weights for the first (advection) and second
// (diffusion) derivative, offsets -2..2.
var (
	advWeights = [2*Reach + 1]float64{1. / 12, -2. / 3, 0, 2. / 3, -1. / 12}
	difWeights = [2*Reach + 1]float64{-1. / 12, 4. / 3, -5. / 2, 4. / 3, -1. / 12}
)

// Coeffs is the precomputed coefficient table of the discretized
// operator -v.grad(u) + nu*laplace(u) for a chosen flow regime and
// diffusivity. It is immutable after construction.
type Coeffs struct {
	nX, nY int
	// data layout follows (offset, x, y, axis): xChunk strides one
	// cell, yChunk one row, cChunk separates the x- and y-axis tables.
	xChunk, yChunk, cChunk int
	data                   []float64
}

// NewCoeffs builds the table for an nX-by-nY interior. Building is
// O(nX*nY); the result is read-only.
func NewCoeffs(nX, nY int, flow Flow, diffusivity float64) *Coeffs {
	width := 2*Reach + 1
	c := &Coeffs{
		nX:     nX,
		nY:     nY,
		xChunk: width,
		yChunk: width * nX,
		cChunk: width * nX * nY,
		data:   make([]float64, 2*width*nX*nY),
	}

	dX, dY := 1/float64(nX), 1/float64(nY)
	dX2, dY2 := dX*dX, dY*dY

	for y := 0; y < nY; y++ {
		for x := 0; x < nX; x++ {
			vX, vY := flow.velocity(float64(x)*dX, float64(y)*dY)
			for s := -Reach; s <= Reach; s++ {
				adv, dif := advWeights[s+Reach], difWeights[s+Reach]
				c.data[c.idx(s, x, y)] = -vX*adv/dX + diffusivity*dif/dX2
				c.data[c.idx(s, x, y)+c.cChunk] = -vY*adv/dY + diffusivity*dif/dY2
			}
		}
	}
	return c
}

func (c *Coeffs) NX() int { return c.nX }
func (c *Coeffs) NY() int { return c.nY }

func (c *Coeffs) idx(s, x, y int) int {
	if s < -Reach || s > Reach || x < 0 || x >= c.nX || y < 0 || y >= c.nY {
		panic(fmt.Sprintf("stencil: coefficient index (s=%d, %d,%d) out of range for %dx%d table", s, x, y, c.nX, c.nY))
	}
	return (s + Reach) + x*c.xChunk + y*c.yChunk
}

// X returns the x-axis coefficient for the neighbor at offset s of
// cell (x,y).
func (c *Coeffs) X(s, x, y int) float64 { return c.data[c.idx(s, x, y)] }

// Y returns the y-axis coefficient for the neighbor at offset s of
// cell (x,y).
func (c *Coeffs) Y(s, x, y int) float64 { return c.data[c.idx(s, x, y)+c.cChunk] }
