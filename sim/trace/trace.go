package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every per-slot scheduling decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a switch run.
type SimulationTrace struct {
	Config TraceConfig
	Slots  []SlotRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Slots:  make([]SlotRecord, 0),
	}
}

// Enabled reports whether records should be collected.
// Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordSlot appends a scheduling decision record.
func (st *SimulationTrace) RecordSlot(record SlotRecord) {
	st.Slots = append(st.Slots, record)
}
