// Package testutil provides shared test infrastructure for the switch simulator.
// It consolidates assertion helpers used across sim/ and sim/sweep/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// RequirePermutation fails the test unless m is a permutation of 0..len(m)-1.
func RequirePermutation(t *testing.T, m []int) {
	t.Helper()
	seen := make([]bool, len(m))
	for in, out := range m {
		require.Truef(t, out >= 0 && out < len(m), "input %d mapped to out-of-range output %d in %v", in, out, m)
		require.Falsef(t, seen[out], "output %d used twice in %v", out, m)
		seen[out] = true
	}
}

// RequirePercentInRange fails the test unless 0 <= p <= 100.
func RequirePercentInRange(t *testing.T, name string, p float64) {
	t.Helper()
	require.GreaterOrEqualf(t, p, 0.0, "%s below 0: %v", name, p)
	require.LessOrEqualf(t, p, 100.0, "%s above 100: %v", name, p)
}
