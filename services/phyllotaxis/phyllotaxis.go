// Package phyllotaxis generates plant-growth point patterns driven by the
// golden angle: sunflower heads, golden and Fermat spirals, daisy florets.
package phyllotaxis

import (
	"math"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

// Point is a 2D coordinate, rounded to four decimal places.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sunflower generates n seed positions with the Vogel model: the i-th seed
// sits at radius c*sqrt(i), rotated i golden angles.
func Sunflower(n int, c float64) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		r := c * math.Sqrt(float64(i))
		theta := float64(i) * phi.GoldenAngle
		points = append(points, at(r, theta))
	}
	return points
}

// GoldenSpiral samples a logarithmic spiral that grows by the given factor
// per full turn (phi gives the classic golden spiral). Angle steps are
// 0.1 radians.
func GoldenSpiral(n int, growth float64) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 0.1
		r := math.Pow(growth, angle/(2*math.Pi))
		points = append(points, at(r, angle))
	}
	return points
}

// FermatSpiral samples the parabolic spiral r = scale*sqrt(theta) at
// golden-angle increments, which yields optimal packing.
func FermatSpiral(n int, scale float64) []Point {
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		theta := float64(i) * phi.GoldenAngle
		r := scale * math.Sqrt(theta)
		points = append(points, at(r, theta))
	}
	return points
}

// Daisy arranges n florets like a daisy head; indices start at 1 so the
// center stays open by innerRadius.
func Daisy(n int, innerRadius float64) []Point {
	points := make([]Point, 0, n)
	for i := 1; i <= n; i++ {
		theta := float64(i) * phi.GoldenAngle
		r := innerRadius * math.Sqrt(float64(i))
		points = append(points, at(r, theta))
	}
	return points
}

func at(r, theta float64) Point {
	return Point{
		X: round4(r * math.Cos(theta)),
		Y: round4(r * math.Sin(theta)),
	}
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
