// Package goldenhash provides golden-ratio multiplicative hashing and
// quasi-random sequence generation. The irrationality of phi spreads
// sequential keys evenly, which is exactly where simple modular hashing
// clusters.
package goldenhash

import (
	"math"
	"math/bits"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

// knuthMultiplier is round(2^64 * (phi - 1)), Knuth's 64-bit Fibonacci
// hashing constant.
const knuthMultiplier uint64 = 11400714819323198485

// plasticInverse is the inverse of the plastic constant, the second-
// dimension base for low-discrepancy sequences.
const plasticInverse = 0.7548776662466927

// Hash maps key into [0, tableSize) via the multiplicative method:
// floor(tableSize * frac(key / phi)).
func Hash(key, tableSize uint64) uint64 {
	_, frac := math.Modf(float64(key) * phi.InvPhi)
	return uint64(float64(tableSize) * frac)
}

// FibonacciHash is Knuth's integer variant: multiply by round(2^64/phi)
// and keep the top bits. tableSize should be a power of two; the result
// ranges over [0, 2^bitlen(tableSize)).
func FibonacciHash(key, tableSize uint64) uint64 {
	bitLen := bits.Len64(tableSize)
	product := key * knuthMultiplier
	return product >> (64 - uint(bitLen))
}

// WeylSequence generates n quasi-random values in [0, 1) by repeatedly
// adding 1/phi mod 1 from seed, six decimals.
func WeylSequence(n int, seed float64) []float64 {
	seq := make([]float64, 0, n)
	state := seed
	for i := 0; i < n; i++ {
		state = math.Mod(state+phi.InvPhi, 1)
		seq = append(seq, round6(state))
	}
	return seq
}

// LowDiscrepancy generates an n-point sequence in [0,1)^dims using a
// different irrational base per dimension: 1/phi, the plastic constant
// inverse, then 1/(1+sqrt(d)) for higher dimensions.
func LowDiscrepancy(n, dims int) [][]float64 {
	bases := make([]float64, dims)
	for d := 0; d < dims; d++ {
		bases[d] = generalizedPhi(d + 1)
	}

	points := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		point := make([]float64, dims)
		for d := 0; d < dims; d++ {
			point[d] = round6(math.Mod(0.5+float64(i+1)*bases[d], 1))
		}
		points = append(points, point)
	}
	return points
}

func generalizedPhi(dim int) float64 {
	switch dim {
	case 1:
		return phi.InvPhi
	case 2:
		return plasticInverse
	default:
		return 1 / (1 + math.Sqrt(float64(dim)))
	}
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
