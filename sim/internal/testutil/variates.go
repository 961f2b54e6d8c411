// Package testutil provides shared test infrastructure for the simulator.
// It consolidates the deterministic variate source and assertion helpers
// used across sim/ and sim/experiment/ test packages.
package testutil

import (
	"math"
	"testing"
)

// FixedVariates replays scripted interarrival gaps and service durations.
// Once a script is exhausted, its Tail value repeats forever; a Tail of
// zero on the gap script is replaced by +Inf so the generator parks.
type FixedVariates struct {
	Gaps     []float64
	Services []float64
	GapTail  float64
	ServTail float64

	gapIdx, servIdx int
}

// InterarrivalGap returns the next scripted gap.
func (f *FixedVariates) InterarrivalGap() float64 {
	if f.gapIdx < len(f.Gaps) {
		g := f.Gaps[f.gapIdx]
		f.gapIdx++
		return g
	}
	if f.GapTail == 0 {
		return math.Inf(1)
	}
	return f.GapTail
}

// ServiceDuration returns the next scripted service duration.
func (f *FixedVariates) ServiceDuration() float64 {
	if f.servIdx < len(f.Services) {
		s := f.Services[f.servIdx]
		f.servIdx++
		return s
	}
	return f.ServTail
}

// GapsDrawn returns how many gaps have been consumed.
func (f *FixedVariates) GapsDrawn() int { return f.gapIdx }

// ServicesDrawn returns how many service durations have been consumed.
func (f *FixedVariates) ServicesDrawn() int { return f.servIdx }

// GapsFor converts absolute arrival times into the interarrival gaps the
// arrival generator consumes (the first gap is measured from t=0).
func GapsFor(arrivals ...float64) []float64 {
	gaps := make([]float64, len(arrivals))
	prev := 0.0
	for i, a := range arrivals {
		gaps[i] = a - prev
		prev = a
	}
	return gaps
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
