package trace

// TraceSummary aggregates statistics from a PoolTrace.
type TraceSummary struct {
	Transitions    int
	Grants         int // immediate grants plus handoffs
	Enqueues       int
	Releases       int
	PeakActive     int
	PeakQueued     int
	CapacityBreach bool // some record had Active > Capacity or Active < 0
	Kinds          map[PoolEventKind]int
}

// Summarize computes aggregate statistics from a PoolTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PoolTrace) *TraceSummary {
	summary := &TraceSummary{
		Kinds: make(map[PoolEventKind]int),
	}
	if pt == nil {
		return summary
	}

	summary.Transitions = len(pt.Records)
	for _, r := range pt.Records {
		summary.Kinds[r.Kind]++
		switch r.Kind {
		case PoolGrant, PoolHandoff:
			summary.Grants++
		case PoolEnqueue:
			summary.Enqueues++
		case PoolRelease:
			summary.Releases++
		}
		if r.Active > summary.PeakActive {
			summary.PeakActive = r.Active
		}
		if r.Queued > summary.PeakQueued {
			summary.PeakQueued = r.Queued
		}
		if r.Active > r.Capacity || r.Active < 0 {
			summary.CapacityBreach = true
		}
	}

	return summary
}
