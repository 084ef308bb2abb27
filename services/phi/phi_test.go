package phi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhiIdentities(t *testing.T) {
	// phi^2 = phi + 1
	assert.InDelta(t, Phi+1, Phi*Phi, 1e-10)

	// 1/phi = phi - 1
	assert.InDelta(t, Phi-1, 1/Phi, 1e-10)

	assert.InDelta(t, InversePhi(), InvPhi, 1e-12)
	assert.InDelta(t, 1.618033988749895, Phi, 1e-12)
	assert.InDelta(t, -0.618033988749895, Psi, 1e-12)
}

func TestGoldenAngle(t *testing.T) {
	assert.InDelta(t, 2.399963229728653, GoldenAngle, 1e-12)
	assert.InDelta(t, 137.5077, GoldenAngleDegrees, 1e-4)

	// radians and degrees describe the same angle
	assert.InDelta(t, GoldenAngleDegrees, GoldenAngle*180/math.Pi, 1e-9)
}

func TestPower(t *testing.T) {
	assert.InDelta(t, Phi*Phi, Power(2), 1e-10)
	assert.InDelta(t, 1, Power(0), 1e-12)
	assert.InDelta(t, InvPhi, Power(-1), 1e-10)
}

func TestIsGoldenRatio(t *testing.T) {
	assert.True(t, IsGoldenRatio(161.8, 100, 0.01))
	assert.False(t, IsGoldenRatio(150, 100, 0.01))
	assert.False(t, IsGoldenRatio(1, 0, 0.01))
}

func TestRectangleFromWidth(t *testing.T) {
	rect := RectangleFromWidth(161.8)
	assert.InDelta(t, 100.0, rect.Height, 0.1)
	assert.Equal(t, 161.8, rect.Width)
	assert.Equal(t, Phi, rect.Ratio)
	assert.InDelta(t, rect.Width*rect.Height, rect.Area, 0.01)
}

func TestRectangleFromHeight(t *testing.T) {
	rect := RectangleFromHeight(100)
	assert.InDelta(t, 161.8034, rect.Width, 1e-4)
	assert.Equal(t, 100.0, rect.Height)
}

func TestSubdivide(t *testing.T) {
	rect := RectangleFromWidth(1000)
	squares := Subdivide(rect.Width, rect.Height, 5)
	require.Len(t, squares, 5)

	// first square has side equal to the short edge
	assert.InDelta(t, rect.Height, squares[0].Side, 1e-9)

	// squares shrink monotonically for a golden rectangle
	for i := 1; i < len(squares); i++ {
		assert.Less(t, squares[i].Side, squares[i-1].Side)
		assert.Equal(t, i, squares[i].Iteration)
	}

	// consecutive square sides are themselves in golden ratio
	assert.InDelta(t, Phi, squares[0].Side/squares[1].Side, 1e-6)
}

func TestSubdivideEmpty(t *testing.T) {
	assert.Empty(t, Subdivide(100, 61.8, 0))
	assert.Empty(t, Subdivide(100, 61.8, -3))
}
