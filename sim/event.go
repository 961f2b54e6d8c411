package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in simulated minutes), an Ordinal stamped by
// Simulator.Schedule for deterministic tie-breaking, and an Execute method
// that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Ordinal() uint64
	Execute(*Simulator)

	stamp(due float64, ordinal uint64)
}

// eventBase carries the scheduling metadata shared by all event types.
type eventBase struct {
	time    float64
	ordinal uint64
}

func (e *eventBase) Timestamp() float64 { return e.time }
func (e *eventBase) Ordinal() uint64    { return e.ordinal }

func (e *eventBase) stamp(due float64, ordinal uint64) {
	e.time = due
	e.ordinal = ordinal
}

// ArrivalEvent is one tick of the arrival generator: it spawns the next
// customer and reschedules itself after a fresh interarrival gap.
type ArrivalEvent struct {
	eventBase
}

// Execute spawns a customer, schedules the following arrival, then lets the
// new customer request an agent.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	c := sim.spawnCustomer()
	logrus.Debugf("<< Arrival: customer %d at %.4f", sim.customers[c].ID, e.time)

	// The generator draws its next gap before the new customer runs, so the
	// variate stream is consumed gap-then-service.
	sim.scheduleNextArrival()

	sim.arrive(c)
}

// GrantEvent resumes a customer that was waiting in the pool's FIFO list
// and has just been handed the agent freed by a release.
type GrantEvent struct {
	eventBase
	Customer CustomerIndex
	// RequestedAt is the clock value at which the customer joined the wait list.
	RequestedAt float64
	// Wait is the time the customer spent waiting, as measured by the pool at release.
	Wait float64
}

// Execute moves the waiting customer into service.
func (e *GrantEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< Grant: customer %d at %.4f (requested %.4f, waited %.4f)", sim.customers[e.Customer].ID, e.time, e.RequestedAt, e.Wait)
	sim.resume(e.Customer, e.Wait)
}

// ServiceCompletionEvent fires when a customer's service duration elapses.
type ServiceCompletionEvent struct {
	eventBase
	Customer CustomerIndex
}

// Execute releases the customer's agent and hands it to the head of the wait list, if any.
func (e *ServiceCompletionEvent) Execute(sim *Simulator) {
	logrus.Debugf("<< ServiceCompletion: customer %d at %.4f", sim.customers[e.Customer].ID, e.time)
	sim.depart(e.Customer)
}
