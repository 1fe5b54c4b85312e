package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalSlots != 0 || summary.MatchingChanges != 0 {
		t.Errorf("expected zero counts, got slots=%d changes=%d", summary.TotalSlots, summary.MatchingChanges)
	}
	if summary.MeanWeight != 0 || summary.MaxWeight != 0 || summary.MeanSent != 0 {
		t.Error("expected zero weight and sent statistics")
	}
	if len(summary.SourceDistribution) != 0 {
		t.Error("expected empty source distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalSlots != 0 || summary.SourceDistribution == nil {
		t.Errorf("expected zero-value summary with initialized map, got %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectStatistics(t *testing.T) {
	// GIVEN records with known weights, sources and sent counts
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordSlot(SlotRecord{Slot: 1, Weight: 2, Source: SourceSwap, Changed: true, Sent: 2})
	st.RecordSlot(SlotRecord{Slot: 2, Weight: 1, Source: SourceHold, Sent: 1})
	st.RecordSlot(SlotRecord{Slot: 3, Weight: 6, Source: SourceCyclic, Changed: true, Sent: 3})
	st.RecordSlot(SlotRecord{Slot: 4, Weight: 3, Source: SourceHold, Sent: 2})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts and means match
	if summary.TotalSlots != 4 {
		t.Errorf("expected 4 slots, got %d", summary.TotalSlots)
	}
	if summary.MatchingChanges != 2 {
		t.Errorf("expected 2 matching changes, got %d", summary.MatchingChanges)
	}
	if summary.MaxWeight != 6 {
		t.Errorf("expected max weight 6, got %d", summary.MaxWeight)
	}
	if summary.MeanWeight != 3.0 {
		t.Errorf("expected mean weight 3.0, got %.4f", summary.MeanWeight)
	}
	if summary.MeanSent != 2.0 {
		t.Errorf("expected mean sent 2.0, got %.4f", summary.MeanSent)
	}
	if summary.SourceDistribution[SourceHold] != 2 ||
		summary.SourceDistribution[SourceSwap] != 1 ||
		summary.SourceDistribution[SourceCyclic] != 1 {
		t.Errorf("unexpected source distribution %v", summary.SourceDistribution)
	}
}
