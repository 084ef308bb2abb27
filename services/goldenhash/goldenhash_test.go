package goldenhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKnownValues(t *testing.T) {
	assert.Equal(t, uint64(61), Hash(1, 100))
	assert.Equal(t, uint64(23), Hash(2, 100))
}

func TestHashSpreadsSequentialKeys(t *testing.T) {
	const tableSize = 100
	seen := make(map[uint64]int)
	for key := uint64(0); key < 1000; key++ {
		h := Hash(key, tableSize)
		require.Less(t, h, uint64(tableSize))
		seen[h]++
	}

	// sequential keys should reach nearly every bucket
	assert.Greater(t, len(seen), 95)
}

func TestFibonacciHash(t *testing.T) {
	// deterministic
	assert.Equal(t, FibonacciHash(42, 1024), FibonacciHash(42, 1024))

	// stays within the bit range of the table size
	for key := uint64(1); key <= 500; key++ {
		h := FibonacciHash(key, 1024)
		require.Less(t, h, uint64(2048), "key %d", key)
	}

	// sequential keys land in distinct slots
	distinct := make(map[uint64]bool)
	for key := uint64(1); key <= 64; key++ {
		distinct[FibonacciHash(key, 1<<16)] = true
	}
	assert.Len(t, distinct, 64)
}

func TestWeylSequence(t *testing.T) {
	seq := WeylSequence(10, 0.5)
	require.Len(t, seq, 10)

	assert.InDelta(t, 0.118034, seq[0], 1e-6)

	for _, v := range seq {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}

	// all values distinct (phi is irrational, no short cycles)
	seen := make(map[float64]bool)
	for _, v := range seq {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}

func TestLowDiscrepancy(t *testing.T) {
	pts := LowDiscrepancy(100, 3)
	require.Len(t, pts, 100)

	for _, p := range pts {
		require.Len(t, p, 3)
		for _, v := range p {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}

	// dimension one follows the golden-ratio base
	assert.InDelta(t, 0.118034, pts[0][0], 1e-6)

	// dimensions use distinct bases, so coordinates differ
	assert.NotEqual(t, pts[0][0], pts[0][1])
	assert.NotEqual(t, pts[0][1], pts[0][2])
}
