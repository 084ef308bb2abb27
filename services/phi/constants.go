// Package phi provides golden ratio constants, identities, and golden
// rectangle calculations.
package phi

import "math"

var (
	// Phi is the golden ratio: (1 + sqrt(5)) / 2.
	Phi = (1 + math.Sqrt(5)) / 2

	// Psi is the conjugate of phi: (1 - sqrt(5)) / 2.
	Psi = (1 - math.Sqrt(5)) / 2

	// InvPhi is 1/phi, which also equals phi - 1.
	InvPhi = (math.Sqrt(5) - 1) / 2

	// GoldenAngle is the golden angle in radians (~137.5 degrees).
	GoldenAngle = math.Pi * (3 - math.Sqrt(5))

	// GoldenAngleDegrees is the golden angle in degrees: 360 / phi^2.
	GoldenAngleDegrees = 360 / (Phi * Phi)
)
