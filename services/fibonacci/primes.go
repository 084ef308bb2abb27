package fibonacci

import (
	"errors"
	"math"
)

// maxExactIndex is the largest 0-based index whose Fibonacci number fits in
// a uint64.
const maxExactIndex = 93

// Prime is a Fibonacci number that is prime, with its 0-based index.
type Prime struct {
	Index int    `json:"index"`
	Value uint64 `json:"value"`
}

// IsPrime reports whether n is prime by trial division.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	limit := uint64(math.Sqrt(float64(n))) + 1
	for i := uint64(3); i <= limit; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Primes returns the Fibonacci primes F(i) for 2 <= i <= maxIndex
// (0-based indices). maxIndex beyond 93 would overflow uint64.
func Primes(maxIndex int) ([]Prime, error) {
	if maxIndex > maxExactIndex {
		return nil, errors.New("max index exceeds uint64 Fibonacci range (93)")
	}

	var primes []Prime
	for i := 2; i <= maxIndex; i++ {
		f := Iterative(i)
		if IsPrime(f) {
			primes = append(primes, Prime{Index: i, Value: f})
		}
	}
	return primes, nil
}
