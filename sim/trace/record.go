// Package trace provides grant/release recording for the agent pool.
// This package has no dependencies on sim/: it stores pure data types.
package trace

// PoolEventKind names a pool transition.
type PoolEventKind string

const (
	// PoolGrant is an agent granted immediately on request.
	PoolGrant PoolEventKind = "grant"
	// PoolEnqueue is a request appended to the wait list.
	PoolEnqueue PoolEventKind = "enqueue"
	// PoolRelease is an agent returned at service completion.
	PoolRelease PoolEventKind = "release"
	// PoolHandoff is a released agent handed to the head of the wait list.
	PoolHandoff PoolEventKind = "handoff"
)

// PoolRecord captures the pool state right after one transition.
type PoolRecord struct {
	Clock      float64
	Kind       PoolEventKind
	CustomerID int
	Active     int
	Capacity   int
	Queued     int
}
