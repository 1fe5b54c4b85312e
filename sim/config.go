package sim

import "github.com/inference-sim/switch-sim/sim/trace"

// SlotReport is the per-slot observation handed to a SlotObserver.
type SlotReport struct {
	Slot    int64   // 1-based slot index within the run
	Sent    int     // packets dequeued in the slot, in [0, ports]
	Percent float64 // Sent / ports * 100
}

// SlotObserver receives one SlotReport per slot. Display cadence is the
// observer's business; the switch reports every slot.
type SlotObserver func(SlotReport)

// RunConfig groups the parameters of one Switch.Run call.
type RunConfig struct {
	Slots    int64                  // number of slots to simulate (must be >= 1)
	Verbose  bool                   // when false, Observer is never invoked
	Observer SlotObserver           // optional per-slot callback
	Trace    *trace.SimulationTrace // optional decision trace (nil = no tracing)
}
