package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialGrid(nX, nY int) *Grid {
	g := New(nX, nY)
	g.Each(func(x, y int, _ float64) {
		g.Set(x, y, float64(x*100+y))
	})
	return g
}

func TestRefreshHaloPeriodicWrap(t *testing.T) {
	g := sequentialGrid(5, 4)
	g.RefreshHalo()

	for x := 0; x < g.NX(); x++ {
		assert.Equal(t, g.At(x, g.NY()-1), g.At(x, -1))
		assert.Equal(t, g.At(x, g.NY()-2), g.At(x, -2))
		assert.Equal(t, g.At(x, 0), g.At(x, g.NY()))
		assert.Equal(t, g.At(x, 1), g.At(x, g.NY()+1))
	}
	for y := 0; y < g.NY(); y++ {
		assert.Equal(t, g.At(g.NX()-1, y), g.At(-1, y))
		assert.Equal(t, g.At(g.NX()-2, y), g.At(-2, y))
		assert.Equal(t, g.At(0, y), g.At(g.NX(), y))
		assert.Equal(t, g.At(1, y), g.At(g.NX()+1, y))
	}
}

func TestRefreshHaloCorners(t *testing.T) {
	g := sequentialGrid(6, 5)
	g.RefreshHalo()

	nX, nY := g.NX(), g.NY()
	assert.Equal(t, g.At(nX-1, nY-1), g.At(-1, -1))
	assert.Equal(t, g.At(nX-2, nY-2), g.At(-2, -2))
	assert.Equal(t, g.At(0, 0), g.At(nX, nY))
	assert.Equal(t, g.At(1, 1), g.At(nX+1, nY+1))
	assert.Equal(t, g.At(nX-1, 0), g.At(-1, nY))
	assert.Equal(t, g.At(0, nY-1), g.At(nX, -1))
}

func TestShapeMismatchRejected(t *testing.T) {
	a := New(4, 4)
	b := New(3, 4)

	require.ErrorIs(t, a.Add(b), ErrShapeMismatch)
	require.ErrorIs(t, a.Assign(b), ErrShapeMismatch)
	require.ErrorIs(t, a.Aypx(2, b), ErrShapeMismatch)
	require.ErrorIs(t, a.Axpy(2, b), ErrShapeMismatch)
}

func TestElementwiseOps(t *testing.T) {
	a := New(3, 2)
	b := New(3, 2)
	a.Fill(func(xn, yn float64) float64 { return 2 })
	b.Fill(func(xn, yn float64) float64 { return 3 })

	require.NoError(t, a.Add(b))
	assert.Equal(t, 5.0, a.At(1, 1))

	a.Scale(2)
	assert.Equal(t, 10.0, a.At(2, 0))

	// a = 0.5*a + b = 5 + 3
	require.NoError(t, a.Aypx(0.5, b))
	assert.Equal(t, 8.0, a.At(0, 1))

	// a = a + 2*b = 8 + 6
	require.NoError(t, a.Axpy(2, b))
	assert.Equal(t, 14.0, a.At(1, 0))
}

func TestOpsSkipHalo(t *testing.T) {
	a := New(3, 3)
	b := New(3, 3)
	b.Fill(func(xn, yn float64) float64 { return 1 })

	a.RefreshHalo()
	require.NoError(t, a.Add(b))

	// halo untouched by the interior-only op
	assert.Equal(t, 0.0, a.At(-1, 0))
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestCloneIsDeep(t *testing.T) {
	a := sequentialGrid(4, 4)
	c := a.Clone()
	c.Set(0, 0, -99)

	assert.Equal(t, 0.0, a.At(0, 0))
	assert.Equal(t, -99.0, c.At(0, 0))
}

func TestOutOfHaloPanics(t *testing.T) {
	g := New(4, 4)
	assert.Panics(t, func() { g.At(g.NX()+Halo, 0) })
	assert.Panics(t, func() { g.At(0, -Halo-1) })
	assert.Panics(t, func() { g.Set(-Halo-1, 0, 1) })
}

func TestInteriorRowMajor(t *testing.T) {
	g := New(3, 2)
	g.Set(0, 0, 1)
	g.Set(1, 0, 2)
	g.Set(2, 0, 3)
	g.Set(0, 1, 4)
	g.Set(1, 1, 5)
	g.Set(2, 1, 6)

	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, g.Interior())
}
