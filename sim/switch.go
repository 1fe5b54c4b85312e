// sim/switch.go
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/switch-sim/sim/trace"
)

// ErrInvalidArgument is returned for non-positive port or slot counts.
var ErrInvalidArgument = errors.New("invalid argument")

// Switch is an n-port input-queued crossbar switch with one virtual output
// queue per (input, output) pair. Each slot it admits one packet per input,
// picks a matching with a greedy swap search plus a cyclic candidate, and serves
// one packet along every non-empty pairing of that matching.
//
// A Switch exclusively owns its queues, matching and RNG stream and is NOT
// thread-safe. Queue contents and the matching carry over between Run calls.
type Switch struct {
	n        int
	queues   *VOQMatrix
	matching Matching
	rng      *PartitionedRNG
	arrivals *rand.Rand
}

// NewSwitch creates a switch with n ports, empty queues and the identity matching.
func NewSwitch(n int, seed uint64) (*Switch, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: port count must be >= 1, got %d", ErrInvalidArgument, n)
	}
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	return &Switch{
		n:        n,
		queues:   NewVOQMatrix(n),
		matching: Identity(n),
		rng:      rng,
		arrivals: rng.ForSubsystem(SubsystemArrivals),
	}, nil
}

// Ports returns the port count.
func (s *Switch) Ports() int {
	return s.n
}

// Key returns the simulation key the switch was seeded with.
func (s *Switch) Key() SimulationKey {
	return s.rng.Key()
}

// Matching returns a copy of the matching currently held by the scheduler.
func (s *Switch) Matching() Matching {
	return s.matching.Clone()
}

// Queue returns the occupancy of VOQ (input, output).
func (s *Switch) Queue(input, output int) int {
	return s.queues.At(input, output)
}

// Backlog returns the total number of packets buffered in the switch.
func (s *Switch) Backlog() int {
	return s.queues.Len()
}

// Arrive injects one packet at every input, destined for an output drawn
// uniformly at random. Consumes exactly n draws from the arrival stream.
func (s *Switch) Arrive() {
	for in := 0; in < s.n; in++ {
		s.queues.Enqueue(in, s.arrivals.Intn(s.n))
	}
}

// Schedule selects the matching for slot and installs it as the scheduler state.
func (s *Switch) Schedule(slot int64) Selection {
	sel := Select(s.queues, s.matching, SwapNeighbors(s.matching), Cyclic(s.n, slot))
	s.matching = sel.Matching
	return sel
}

// Serve dequeues one packet along every pairing of m whose VOQ is non-empty
// and returns the number of packets sent.
func (s *Switch) Serve(m Matching) int {
	sent := 0
	for in, out := range m {
		if s.queues.Dequeue(in, out) {
			sent++
		}
	}
	return sent
}

// Run simulates cfg.Slots slots (arrivals, scheduling, departures) and returns
// the aggregate throughput. Slots are numbered from 1 on every call.
// Returns ErrInvalidArgument, without touching any state, if cfg.Slots < 1.
func (s *Switch) Run(cfg RunConfig) (Result, error) {
	if cfg.Slots < 1 {
		return Result{}, fmt.Errorf("%w: time slots must be >= 1, got %d", ErrInvalidArgument, cfg.Slots)
	}
	logrus.Debugf("switch run starting: ports=%d slots=%d seed=%d backlog=%d",
		s.n, cfg.Slots, s.Key(), s.queues.Len())

	recordTrace := cfg.Trace.Enabled()
	notify := cfg.Verbose && cfg.Observer != nil
	metrics := NewMetrics(s.n)

	for t := int64(1); t <= cfg.Slots; t++ {
		s.Arrive()
		prev := s.matching
		sel := s.Schedule(t)
		sent := s.Serve(sel.Matching)
		metrics.Record(sent)

		if recordTrace {
			cfg.Trace.RecordSlot(trace.SlotRecord{
				Slot:     t,
				Matching: []int(sel.Matching),
				Weight:   sel.Weight,
				Source:   string(sel.Source),
				Changed:  !sel.Matching.Equal(prev),
				Sent:     sent,
			})
		}
		if notify {
			cfg.Observer(SlotReport{Slot: t, Sent: sent, Percent: float64(sent) / float64(s.n) * 100})
		}
	}

	res := metrics.Result(s.queues.Len())
	logrus.Debugf("switch run finished: ports=%d total_sent=%d avg=%.6f (%.4f%%)",
		s.n, res.TotalSent, res.AvgPacketsPerSlot, res.AvgPercent)
	return res, nil
}
