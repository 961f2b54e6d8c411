package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	// GIVEN no trace at all
	// WHEN summarized
	summary := Summarize(nil)

	// THEN all counts are zero and the kind map is usable
	if summary.Transitions != 0 || summary.Grants != 0 || summary.Releases != 0 {
		t.Error("expected zero counts")
	}
	if summary.Kinds == nil {
		t.Error("expected non-nil kind map")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a 1-agent trace: grant, enqueue, release+handoff
	pt := NewPoolTrace()
	pt.Record(PoolRecord{Clock: 0, Kind: PoolGrant, CustomerID: 1, Active: 1, Capacity: 1})
	pt.Record(PoolRecord{Clock: 2, Kind: PoolEnqueue, CustomerID: 2, Active: 1, Capacity: 1, Queued: 1})
	pt.Record(PoolRecord{Clock: 3, Kind: PoolRelease, CustomerID: 1, Active: 1, Capacity: 1})
	pt.Record(PoolRecord{Clock: 3, Kind: PoolHandoff, CustomerID: 2, Active: 1, Capacity: 1})

	// WHEN summarized
	summary := Summarize(pt)

	// THEN counts reflect the records
	if summary.Transitions != 4 {
		t.Errorf("expected 4 transitions, got %d", summary.Transitions)
	}
	if summary.Grants != 2 {
		t.Errorf("expected 2 grants (immediate + handoff), got %d", summary.Grants)
	}
	if summary.Enqueues != 1 || summary.Releases != 1 {
		t.Errorf("expected 1 enqueue and 1 release, got %d and %d", summary.Enqueues, summary.Releases)
	}
	if summary.PeakActive != 1 || summary.PeakQueued != 1 {
		t.Errorf("expected peaks 1/1, got %d/%d", summary.PeakActive, summary.PeakQueued)
	}
	if summary.CapacityBreach {
		t.Error("unexpected capacity breach")
	}
}

func TestSummarize_OverCommittedRecord_FlagsBreach(t *testing.T) {
	// GIVEN a record with more active agents than capacity
	pt := NewPoolTrace()
	pt.Record(PoolRecord{Kind: PoolGrant, Active: 3, Capacity: 2})

	// WHEN summarized
	summary := Summarize(pt)

	// THEN the breach is reported
	if !summary.CapacityBreach {
		t.Error("expected capacity breach to be flagged")
	}
}
