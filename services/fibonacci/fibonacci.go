// Package fibonacci implements Fibonacci sequence algorithms with different
// time/space trade-offs, plus related sequences (Lucas, tribonacci) and
// number-theoretic helpers.
//
// The uint64 functions are exact through F(93) = 12200160415121876738; the
// math/big variants (Matrix, FastDoubling, Lucas) have no such limit.
package fibonacci

import (
	"math"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

// Ratio is one step of the F(n)/F(n-1) convergence toward phi.
type Ratio struct {
	Index int     `json:"index"`
	Ratio float64 `json:"ratio"`
	Error float64 `json:"error"`
}

// Sequence returns the first n Fibonacci numbers starting 1, 1, 2, 3, ...
// Returns nil for n <= 0.
func Sequence(n int) []uint64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []uint64{1}
	}

	fib := make([]uint64, n)
	fib[0], fib[1] = 1, 1
	for i := 2; i < n; i++ {
		fib[i] = fib[i-1] + fib[i-2]
	}
	return fib
}

// Nth returns the nth Fibonacci number, 1-based: Nth(1) = Nth(2) = 1.
// Time O(n), space O(1).
func Nth(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n <= 2 {
		return 1
	}

	a, b := uint64(1), uint64(1)
	for i := 2; i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// Iterative returns the nth Fibonacci number, 0-based: F(0)=0, F(1)=1.
// Time O(n), space O(1).
func Iterative(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}

	a, b := uint64(0), uint64(1)
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

// NthBinet computes the nth Fibonacci number via Binet's closed form
// round((phi^n - psi^n) / sqrt(5)). Loses precision for n > ~70.
func NthBinet(n int) uint64 {
	fn := float64(n)
	v := (math.Pow(phi.Phi, fn) - math.Pow(phi.Psi, fn)) / math.Sqrt(5)
	return uint64(math.Round(v))
}

// RatioConvergence returns F(i)/F(i-1) for i = 1..n together with the
// absolute error from phi.
func RatioConvergence(n int) []Ratio {
	fib := Sequence(n + 1)
	out := make([]Ratio, 0, len(fib))
	for i := 1; i < len(fib); i++ {
		r := float64(fib[i]) / float64(fib[i-1])
		out = append(out, Ratio{
			Index: i,
			Ratio: r,
			Error: math.Abs(r - phi.Phi),
		})
	}
	return out
}

// RatioAt returns F(n)/F(n-1) using 0-based indices. NaN for n == 0.
func RatioAt(n int) float64 {
	if n <= 0 {
		return math.NaN()
	}
	prev := Iterative(n - 1)
	if prev == 0 {
		return math.Inf(1)
	}
	return float64(Iterative(n)) / float64(prev)
}

// Iterator yields Fibonacci numbers 0, 1, 1, 2, 3, ... one per Next call.
// Values wrap past F(93).
type Iterator struct {
	current uint64
	next    uint64
}

// NewIterator returns an iterator positioned at F(0).
func NewIterator() *Iterator {
	return &Iterator{current: 0, next: 1}
}

// Next returns the current term and advances the iterator.
func (it *Iterator) Next() uint64 {
	v := it.current
	it.current, it.next = it.next, v+it.next
	return v
}

// Tribonacci returns the nth tribonacci number: T(0)=T(1)=0, T(2)=1,
// T(n) = T(n-1) + T(n-2) + T(n-3). Consecutive ratios approach the
// tribonacci constant (~1.839).
func Tribonacci(n int) uint64 {
	if n < 2 {
		return 0
	}
	if n == 2 {
		return 1
	}

	a, b, c := uint64(0), uint64(0), uint64(1)
	for i := 3; i <= n; i++ {
		a, b, c = b, c, a+b+c
	}
	return c
}

// IsFibonacci reports whether n is a Fibonacci number: one of 5n^2+4 or
// 5n^2-4 must be a perfect square.
func IsFibonacci(n uint64) bool {
	nn := 5 * n * n
	if isPerfectSquare(nn + 4) {
		return true
	}
	return nn >= 4 && isPerfectSquare(nn-4)
}

func isPerfectSquare(x uint64) bool {
	s := uint64(math.Sqrt(float64(x)))
	// float sqrt can be off by one near large squares
	for _, c := range []uint64{s - 1, s, s + 1} {
		if c*c == x {
			return true
		}
	}
	return false
}

// GCD computes the greatest common divisor by Euclid's algorithm and
// reports the number of division steps taken. Consecutive Fibonacci
// numbers are the worst case.
func GCD(a, b uint64) (uint64, int) {
	steps := 0
	for b != 0 {
		a, b = b, a%b
		steps++
	}
	return a, steps
}
