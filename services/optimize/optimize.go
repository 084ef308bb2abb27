// Package optimize implements golden-section search for minimizing
// unimodal functions of one variable.
package optimize

import (
	"errors"
	"math"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

// GoldenSectionSearch finds the minimum of a unimodal f on [a, b] by
// narrowing the interval at golden-ratio points until it is no wider than
// tolerance, then returns the midpoint. Bounds are swapped if given in
// reverse; tolerance must be positive.
func GoldenSectionSearch(f func(float64) float64, a, b, tolerance float64) (float64, error) {
	if tolerance <= 0 {
		return 0, errors.New("tolerance must be positive")
	}
	if a > b {
		a, b = b, a
	}

	resphi := 2 - phi.Phi

	x1 := a + resphi*(b-a)
	x2 := b - resphi*(b-a)
	f1 := f(x1)
	f2 := f(x2)

	for math.Abs(b-a) > tolerance {
		if f1 < f2 {
			b = x2
			x2, f2 = x1, f1
			x1 = a + resphi*(b-a)
			f1 = f(x1)
		} else {
			a = x1
			x1, f1 = x2, f2
			x2 = b - resphi*(b-a)
			f2 = f(x2)
		}
	}

	return (a + b) / 2, nil
}

// Maximize runs GoldenSectionSearch on -f.
func Maximize(f func(float64) float64, a, b, tolerance float64) (float64, error) {
	return GoldenSectionSearch(func(x float64) float64 { return -f(x) }, a, b, tolerance)
}
