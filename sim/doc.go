// Package sim provides the slot-by-slot simulation engine of an input-queued
// crossbar switch.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - queue.go: VOQMatrix, the per-(input, output) packet counts
//   - matching.go: candidate generation (swap neighbors, cyclic shift) and selection
//   - switch.go: the per-slot pipeline and Run loop
//
// # Slot Pipeline
//
// Every slot runs, in order:
//  1. Arrive: one packet per input, destination drawn uniformly at random
//  2. Schedule: greedy swap search from the held matching plus one cyclic candidate
//  3. Serve: one packet leaves along every non-empty pairing
//  4. Metrics.Record: accumulate the sent count
//
// # Sub-packages
//   - sim/trace/: per-slot decision trace recording
//   - sim/sweep/: parallel port-count sweeps and CSV report
//
// Randomness is confined to one PartitionedRNG per switch, so a switch is
// fully reproducible from its port count and seed.
package sim
