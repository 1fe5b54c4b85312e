package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSlots         int
	MatchingChanges    int
	MeanWeight         float64
	MaxWeight          int
	MeanSent           float64
	SourceDistribution map[string]int // candidate source → number of slots it won
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SourceDistribution: make(map[string]int),
	}
	if st == nil || len(st.Slots) == 0 {
		return summary
	}

	summary.TotalSlots = len(st.Slots)
	totalWeight, totalSent := 0, 0
	for _, r := range st.Slots {
		summary.SourceDistribution[r.Source]++
		if r.Changed {
			summary.MatchingChanges++
		}
		totalWeight += r.Weight
		totalSent += r.Sent
		if r.Weight > summary.MaxWeight {
			summary.MaxWeight = r.Weight
		}
	}
	summary.MeanWeight = float64(totalWeight) / float64(len(st.Slots))
	summary.MeanSent = float64(totalSent) / float64(len(st.Slots))

	return summary
}
