package fibonacci

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consigcody94/golden-ratio-compendium/services/phi"
)

func TestSequence(t *testing.T) {
	assert.Equal(t, []uint64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}, Sequence(10))
	assert.Equal(t, []uint64{1}, Sequence(1))
	assert.Nil(t, Sequence(0))
	assert.Nil(t, Sequence(-5))
}

func TestNth(t *testing.T) {
	cases := []struct {
		n    int
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{10, 55},
		{20, 6765},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Nth(tc.n), "Nth(%d)", tc.n)
	}
}

func TestIterative(t *testing.T) {
	// 0-based: F(0)=0, F(1)=1
	want := []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for i, w := range want {
		assert.Equal(t, w, Iterative(i), "Iterative(%d)", i)
	}
	assert.Equal(t, uint64(12200160415121876738), Iterative(93))
}

func TestBinetAgreesWithIterative(t *testing.T) {
	for n := 0; n <= 70; n++ {
		require.Equal(t, Iterative(n), NthBinet(n), "n=%d", n)
	}
}

func TestMatrixAndFastDoubling(t *testing.T) {
	for n := 0; n <= 93; n++ {
		m := Matrix(n)
		d := FastDoubling(n)
		require.Equal(t, 0, m.Cmp(d), "Matrix(%d) != FastDoubling(%d)", n, n)
		require.Equal(t, Iterative(n), m.Uint64(), "n=%d", n)
	}

	// F(100) exceeds uint64
	assert.Equal(t, "354224848179261915075", FastDoubling(100).String())
	assert.Equal(t, "354224848179261915075", Matrix(100).String())
}

func TestLucas(t *testing.T) {
	want := []int64{2, 1, 3, 4, 7, 11, 18, 29, 47, 76, 123}
	for i, w := range want {
		assert.Equal(t, w, Lucas(i).Int64(), "Lucas(%d)", i)
	}

	// L(n) = F(n-1) + F(n+1)
	for n := 1; n <= 40; n++ {
		sum := Iterative(n-1) + Iterative(n+1)
		assert.Equal(t, sum, Lucas(n).Uint64(), "identity at n=%d", n)
	}
}

func TestTribonacci(t *testing.T) {
	want := []uint64{0, 0, 1, 1, 2, 4, 7, 13, 24, 44, 81}
	for i, w := range want {
		assert.Equal(t, w, Tribonacci(i), "Tribonacci(%d)", i)
	}
}

func TestIsFibonacci(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 5, 8, 13, 144, 6765} {
		assert.True(t, IsFibonacci(n), "%d should be Fibonacci", n)
	}
	for _, n := range []uint64{4, 6, 7, 100, 6764} {
		assert.False(t, IsFibonacci(n), "%d should not be Fibonacci", n)
	}
}

func TestRatioConvergence(t *testing.T) {
	conv := RatioConvergence(20)
	require.Len(t, conv, 20)

	last := conv[len(conv)-1]
	assert.Less(t, last.Error, 1e-8)
	assert.InDelta(t, phi.Phi, last.Ratio, 1e-8)

	// errors shrink as n grows (check a spread, not every step)
	assert.Less(t, conv[15].Error, conv[5].Error)
}

func TestRatioAt(t *testing.T) {
	assert.True(t, math.IsNaN(RatioAt(0)))
	assert.True(t, math.IsInf(RatioAt(1), 1))
	assert.InDelta(t, phi.Phi, RatioAt(20), 1e-8)
}

func TestIterator(t *testing.T) {
	it := NewIterator()
	var got []uint64
	for i := 0; i < 10; i++ {
		got = append(got, it.Next())
	}
	assert.Equal(t, []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}, got)
}

func TestIsPrime(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 13, 89, 233, 1597}
	for _, p := range primes {
		assert.True(t, IsPrime(p), "%d", p)
	}
	composites := []uint64{0, 1, 4, 9, 15, 21, 6765}
	for _, c := range composites {
		assert.False(t, IsPrime(c), "%d", c)
	}
}

func TestPrimes(t *testing.T) {
	got, err := Primes(20)
	require.NoError(t, err)

	want := []Prime{
		{Index: 3, Value: 2},
		{Index: 4, Value: 3},
		{Index: 5, Value: 5},
		{Index: 7, Value: 13},
		{Index: 11, Value: 89},
		{Index: 13, Value: 233},
		{Index: 17, Value: 1597},
	}
	assert.Equal(t, want, got)

	_, err = Primes(94)
	assert.Error(t, err)
}

func TestGCD(t *testing.T) {
	g, steps := GCD(55, 34)
	assert.Equal(t, uint64(1), g)
	assert.Equal(t, 8, steps)

	g, _ = GCD(48, 18)
	assert.Equal(t, uint64(6), g)

	// consecutive Fibonacci numbers take more steps than most pairs
	_, fibSteps := GCD(Iterative(20), Iterative(19))
	_, plainSteps := GCD(6765, 100)
	assert.Greater(t, fibSteps, plainSteps)
}
