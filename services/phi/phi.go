package phi

import "math"

// InversePhi returns 1/phi (approximately 0.618033988749895).
func InversePhi() float64 {
	return 1 / Phi
}

// Power returns phi raised to the power n. Negative exponents are allowed.
func Power(n int) float64 {
	return math.Pow(Phi, float64(n))
}

// IsGoldenRatio reports whether a/b is within tolerance of phi.
// Returns false when b is zero.
func IsGoldenRatio(a, b, tolerance float64) bool {
	if b == 0 {
		return false
	}
	return math.Abs(a/b-Phi) < tolerance
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
