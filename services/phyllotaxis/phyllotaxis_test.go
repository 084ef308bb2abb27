package phyllotaxis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func radius(p Point) float64 {
	return math.Hypot(p.X, p.Y)
}

func TestSunflower(t *testing.T) {
	pts := Sunflower(100, 2.0)
	require.Len(t, pts, 100)

	// seed zero sits at the origin
	assert.Equal(t, Point{0, 0}, pts[0])

	// radii grow as c*sqrt(i)
	for i := 1; i < len(pts); i += 10 {
		assert.InDelta(t, 2.0*math.Sqrt(float64(i)), radius(pts[i]), 1e-3, "seed %d", i)
	}

	// neighboring seeds never stack: golden angle keeps them apart
	for i := 1; i < len(pts); i++ {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		assert.Greater(t, math.Hypot(dx, dy), 0.5, "seeds %d and %d", i-1, i)
	}
}

func TestGoldenSpiral(t *testing.T) {
	pts := GoldenSpiral(100, math.Phi)
	require.Len(t, pts, 100)

	// first point: angle 0, r = 1
	assert.Equal(t, Point{1, 0}, pts[0])

	// radius grows by the growth factor per full turn
	r0 := radius(pts[0])
	// one full turn is ~63 steps of 0.1 rad
	rTurn := radius(pts[63])
	assert.InDelta(t, math.Phi, rTurn/r0, 0.02)
}

func TestFermatSpiral(t *testing.T) {
	pts := FermatSpiral(50, 1.0)
	require.Len(t, pts, 50)
	assert.Equal(t, Point{0, 0}, pts[0])

	// radii follow sqrt(theta)
	theta10 := 10 * 2.399963229728653
	assert.InDelta(t, math.Sqrt(theta10), radius(pts[10]), 1e-3)
}

func TestDaisy(t *testing.T) {
	pts := Daisy(30, 1.5)
	require.Len(t, pts, 30)

	// starts at index 1, so the first floret is off-center
	assert.InDelta(t, 1.5, radius(pts[0]), 1e-3)

	// radii non-decreasing
	for i := 1; i < len(pts); i++ {
		assert.GreaterOrEqual(t, radius(pts[i])+1e-9, radius(pts[i-1]))
	}
}
