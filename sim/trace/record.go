// Package trace provides decision-trace recording for per-slot scheduling analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Candidate sources, mirrored from the scheduler as plain strings.
const (
	SourceHold   = "hold"
	SourceSwap   = "swap"
	SourceCyclic = "cyclic"
)

// SlotRecord captures a single scheduling decision and its outcome.
type SlotRecord struct {
	Slot     int64
	Matching []int  // selected matching; position i is the output for input i
	Weight   int    // summed VOQ occupancy along Matching before departures
	Source   string // "hold", "swap" or "cyclic"
	Changed  bool   // true if Matching differs from the previous slot's matching
	Sent     int    // packets actually dequeued in the slot
}
