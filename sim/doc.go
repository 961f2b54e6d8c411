// Package sim provides the core discrete-event simulation engine for the
// call-center staffing simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (arrived → waiting → in_service → departed)
//   - event.go: Event types that drive the simulation (Arrival, Grant, ServiceCompletion)
//   - simulator.go: The event loop, horizon cutoff and sample collection
//   - resource.go: The capacity-bounded agent pool with its FIFO wait list
//
// # Architecture
//
// The sim package owns a single replication. Everything above it lives in
// sub-packages:
//   - sim/workload/: interarrival and service-time distributions, variate sources
//   - sim/experiment/: replication harness and per-configuration summaries
//   - sim/trace/: optional grant/release trace of the agent pool
//
// A Simulator is single-threaded: exactly one event executes at a time and
// all pool mutation happens inside the dispatch loop, so nothing in this
// package takes a lock. Replications that run concurrently each own their
// Simulator and their random stream.
//
// # Invariant violations
//
// States that correct event handling can never produce (an over-committed
// pool, a negative wait, a release without a matching grant, a negative
// delay) panic instead of returning errors.
package sim
