package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInit(t *testing.T) {
	for _, name := range InitNames() {
		ic, err := ParseInit(name)
		require.NoError(t, err)
		assert.Equal(t, name, ic.String())
	}

	_, err := ParseInit("blob")
	require.ErrorIs(t, err, ErrUnknownInit)
}

func TestGaussPeaksAtQuarter(t *testing.T) {
	g := New(4, 4)
	g.Populate(InitGauss)

	// (1/4, 1/4) is the exact center of the bump
	assert.Equal(t, 1.0, g.At(1, 1))
	g.Each(func(x, y int, v float64) {
		assert.LessOrEqual(t, v, 1.0)
		assert.Greater(t, v, 0.0)
	})
}

func TestSinusNodesAndAntinodes(t *testing.T) {
	g := New(8, 8)
	g.Populate(InitSinus)

	assert.Equal(t, 0.0, g.At(0, 0))
	assert.InDelta(t, 0.5, g.At(1, 1), 1e-12)  // sin(pi/4)^2
	assert.InDelta(t, 1.0, g.At(2, 2), 1e-12)  // sin(pi/2)^2
	assert.InDelta(t, -1.0, g.At(2, 6), 1e-12) // opposite phase
}

func TestCross2DominatesCross(t *testing.T) {
	a := New(16, 16)
	b := New(16, 16)
	a.Populate(InitCross)
	b.Populate(InitCross2)

	// max(eX, eY) >= 0.5*(eX + eY) everywhere
	b.Each(func(x, y int, v float64) {
		assert.GreaterOrEqual(t, v, a.At(x, y))
	})
}
