package sim

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Matching is a one-to-one assignment of inputs to outputs for a single slot.
// Position i holds the output port served by input i; a valid Matching is a
// permutation of 0..n-1.
type Matching []int

// Identity returns the matching that connects every input i to output i.
func Identity(n int) Matching {
	m := make(Matching, n)
	for i := range m {
		m[i] = i
	}
	return m
}

// Clone returns an independent copy of m.
func (m Matching) Clone() Matching {
	return slices.Clone(m)
}

// Equal reports whether m and other assign every input to the same output.
func (m Matching) Equal(other Matching) bool {
	return slices.Equal(m, other)
}

// Validate returns an error unless m is a permutation of 0..len(m)-1.
func (m Matching) Validate() error {
	seen := make([]bool, len(m))
	for in, out := range m {
		if out < 0 || out >= len(m) {
			return fmt.Errorf("input %d mapped to out-of-range output %d", in, out)
		}
		if seen[out] {
			return fmt.Errorf("output %d assigned to both input %d and input %d", out, slices.Index(m, out), in)
		}
		seen[out] = true
	}
	return nil
}

// SwapNeighbors returns every matching reachable from current by exchanging the
// outputs of one pair of inputs (i, j), i < j. Candidates are ordered by i
// ascending, then j ascending; tie-breaking in Select depends on this order.
// current is not modified.
func SwapNeighbors(current Matching) []Matching {
	n := len(current)
	neighbors := make([]Matching, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			nb := current.Clone()
			nb[i], nb[j] = nb[j], nb[i]
			neighbors = append(neighbors, nb)
		}
	}
	return neighbors
}

// Cyclic returns the round-robin matching offered at slot t: input i is
// connected to output (i + t mod n) mod n. Over any n consecutive slots every
// rotation is produced exactly once.
func Cyclic(n int, slot int64) Matching {
	k := int(slot % int64(n))
	if k < 0 {
		k += n
	}
	m := make(Matching, n)
	for i := range m {
		m[i] = (i + k) % n
	}
	return m
}

// CandidateSource names where the selected matching of a slot came from.
type CandidateSource string

const (
	// SourceHold means the current matching was kept.
	SourceHold CandidateSource = "hold"
	// SourceSwap means a pairwise-swap neighbor won.
	SourceSwap CandidateSource = "swap"
	// SourceCyclic means the cyclic candidate won.
	SourceCyclic CandidateSource = "cyclic"
)

// Selection is the outcome of one scheduling decision.
type Selection struct {
	Matching Matching
	Weight   int
	Source   CandidateSource
}

// Select runs one steepest-ascent step over the swap neighborhood of current,
// followed by a single comparison against the cyclic candidate.
//
// current is considered first and so wins every tie; among neighbors, the
// earliest-enumerated one wins ties. The cyclic candidate replaces the running
// best only when its weight is strictly greater.
func Select(q *VOQMatrix, current Matching, neighbors []Matching, cyclic Matching) Selection {
	best := Selection{Matching: current, Weight: q.Weight(current), Source: SourceHold}
	for _, nb := range neighbors {
		if w := q.Weight(nb); w > best.Weight {
			best = Selection{Matching: nb, Weight: w, Source: SourceSwap}
		}
	}
	if w := q.Weight(cyclic); w > best.Weight {
		best = Selection{Matching: cyclic, Weight: w, Source: SourceCyclic}
	}
	return best
}
