// Defines the Customer struct that models one caller in the simulation.
// Tracks arrival time, time spent waiting for an agent and service duration.

package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/callcenter-sim/sim/trace"
)

// CustomerState represents the lifecycle state of a customer.
type CustomerState string

const (
	StateArrived   CustomerState = "arrived"
	StateWaiting   CustomerState = "waiting"
	StateInService CustomerState = "in_service"
	StateDeparted  CustomerState = "departed"
)

// Customer models a single caller's lifecycle in the simulation.
// Customers live in their Simulator's arena and are addressed by CustomerIndex.
type Customer struct {
	ID int // Sequential identifier, starting at 1 in each replication

	State CustomerState // arrived, waiting, in_service, departed

	ArrivalTime     float64 // Clock value when the customer arrived
	WaitTime        float64 // Time between arrival and being granted an agent
	ServiceStart    float64 // Clock value when service began
	ServiceDuration float64 // Drawn from the service-time distribution on entering service
}

// ServiceEnd returns the time at which the customer's service completes.
// Only meaningful once the customer has entered service.
func (c Customer) ServiceEnd() float64 {
	return c.ServiceStart + c.ServiceDuration
}

// This method returns a human-readable string representation of a Customer.
func (c Customer) String() string {
	return fmt.Sprintf("Customer: (ID: %d, State: %s, ArrivalTime: %.4f, Wait: %.4f, Service: %.4f)",
		c.ID, c.State, c.ArrivalTime, c.WaitTime, c.ServiceDuration)
}

// waitTolerance bounds the disagreement allowed between the pool's wait
// measurement and the customer's own clock arithmetic.
const waitTolerance = 1e-9

// Sample is the immutable record a served customer leaves behind for the
// metrics aggregator.
type Sample struct {
	Wait    float64
	Service float64
}

// spawnCustomer appends a new customer to the arena, arriving now.
func (sim *Simulator) spawnCustomer() CustomerIndex {
	sim.nextCustomerID++
	sim.customers = append(sim.customers, Customer{
		ID:          sim.nextCustomerID,
		State:       StateArrived,
		ArrivalTime: sim.Clock,
	})
	return CustomerIndex(len(sim.customers) - 1)
}

// arrive runs a new customer's first step: request an agent, and either
// start service right away or wait in the pool's list.
func (sim *Simulator) arrive(idx CustomerIndex) {
	c := &sim.customers[idx]
	if c.State != StateArrived {
		panic(fmt.Sprintf("arrive: customer %d in state %s", c.ID, c.State))
	}
	granted := sim.Pool.Request(idx, sim.Clock)
	if granted {
		sim.tracePool(trace.PoolGrant, c.ID)
		sim.beginService(idx, 0)
		return
	}
	sim.tracePool(trace.PoolEnqueue, c.ID)
	c.State = StateWaiting
	logrus.Debugf("customer %d waiting (queue=%d)", c.ID, sim.Pool.QueueLen())
}

// resume continues a waiting customer that a release has granted an agent to.
// wait is the pool's measurement; grants are dispatched at the release
// instant, so it must equal the time since the customer arrived.
func (sim *Simulator) resume(idx CustomerIndex, wait float64) {
	c := &sim.customers[idx]
	if c.State != StateWaiting {
		panic(fmt.Sprintf("resume: customer %d in state %s", c.ID, c.State))
	}
	if math.Abs(wait-(sim.Clock-c.ArrivalTime)) > waitTolerance {
		panic(fmt.Sprintf("resume: customer %d granted with wait %.6f, but arrived %.6f before now",
			c.ID, wait, sim.Clock-c.ArrivalTime))
	}
	sim.beginService(idx, wait)
}

// beginService draws the service duration, commits the customer's sample
// and schedules the completion. A customer admitted to service is counted
// even if its completion falls past the horizon.
func (sim *Simulator) beginService(idx CustomerIndex, wait float64) {
	c := &sim.customers[idx]
	if wait < 0 {
		panic(fmt.Sprintf("beginService: negative wait %.6f for customer %d", wait, c.ID))
	}
	c.WaitTime = wait
	c.ServiceStart = sim.Clock
	c.ServiceDuration = sim.Variates.ServiceDuration()
	c.State = StateInService
	sim.samples = append(sim.samples, Sample{Wait: c.WaitTime, Service: c.ServiceDuration})

	sim.Schedule(c.ServiceDuration, &ServiceCompletionEvent{Customer: idx})
}

// depart releases the customer's agent; if someone was waiting, their grant
// is scheduled at the current time.
func (sim *Simulator) depart(idx CustomerIndex) {
	c := &sim.customers[idx]
	if c.State != StateInService {
		panic(fmt.Sprintf("depart: customer %d in state %s", c.ID, c.State))
	}
	c.State = StateDeparted
	sim.departed++

	grant, ok := sim.Pool.Release(sim.Clock)
	sim.tracePool(trace.PoolRelease, c.ID)
	if !ok {
		return
	}
	sim.Schedule(0, &GrantEvent{Customer: grant.Customer, RequestedAt: grant.RequestedAt, Wait: grant.Wait})
	sim.tracePool(trace.PoolHandoff, sim.customers[grant.Customer].ID)
}
