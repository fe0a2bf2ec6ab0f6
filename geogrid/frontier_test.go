package geogrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierRingZero(t *testing.T) {
	f := NewFrontier("t0dbr")

	ring, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"t0dbr"}, ring)
}

func TestFrontierRingSizes(t *testing.T) {
	f := NewFrontier("t0dbr")

	// Ring i has 8*i cells for i >= 1 when nothing else claims cells.
	for i := 0; i <= 5; i++ {
		ring, err := f.Next()
		require.NoError(t, err)

		want := 8 * i
		if i == 0 {
			want = 1
		}
		assert.Len(t, ring, want, "ring %d", i)
	}
}

func TestFrontierCumulativeCells(t *testing.T) {
	// Cumulative cell count through N rings is (2N-1)^2.
	for _, n := range []int{2, 3, 4, 5} {
		total := 0
		for _, ring := range Rings("t0dbr", n) {
			total += len(ring)
		}
		assert.Equal(t, (2*n-1)*(2*n-1), total, "N=%d", n)
	}
}

func TestRingsBounded(t *testing.T) {
	assert.Len(t, Rings("t0dbr", 1), 1)
	assert.Len(t, Rings("t0dbr", 4), 4)
}

func TestFrontierExhaustion(t *testing.T) {
	f := NewFrontier("t0dbr")
	f.maxRings = 3

	for i := 0; i <= 3; i++ {
		_, err := f.Next()
		require.NoError(t, err, "ring %d", i)
	}

	_, err := f.Next()
	assert.ErrorIs(t, err, ErrExpansionExhausted)

	// Exhaustion is sticky.
	_, err = f.Next()
	assert.ErrorIs(t, err, ErrExpansionExhausted)
}
