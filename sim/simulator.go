// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/callcenter-sim/sim/trace"
)

// VariateSource supplies the random draws a replication consumes.
// Implementations are called from the dispatch loop only, in the order the
// simulation needs them: one gap per arrival tick, one duration per
// customer entering service.
type VariateSource interface {
	InterarrivalGap() float64
	ServiceDuration() float64
}

// SimConfig holds the parameters of one replication.
type SimConfig struct {
	Horizon   float64 // Simulated minutes after which no event is dispatched
	NumAgents int     // Capacity of the agent pool
}

// Simulator is the core object that holds simulation time, the agent pool
// and the event loop for one replication.
type Simulator struct {
	Clock   float64
	Horizon float64
	// EventQueue holds every pending event, ordered by (timestamp, ordinal)
	EventQueue *EventHeap
	// Pool is the set of agents customers contend for
	Pool *ResourcePool
	// Variates is the random draw handle threaded through the replication
	Variates VariateSource
	// Trace records pool transitions when non-nil
	Trace *trace.PoolTrace

	customers      []Customer
	samples        []Sample
	nextOrdinal    uint64
	nextCustomerID int
	departed       int
	eventCount     int
	started        bool
}

// NewSimulator creates a Simulator for a single replication.
// Panics on a non-positive horizon or agent count and on a nil variate source;
// callers validate configuration before constructing replications.
func NewSimulator(cfg SimConfig, variates VariateSource) *Simulator {
	if cfg.Horizon <= 0 {
		panic(fmt.Sprintf("NewSimulator: horizon must be > 0, got %v", cfg.Horizon))
	}
	if variates == nil {
		panic("NewSimulator: variates must not be nil")
	}
	return &Simulator{
		Clock:      0,
		Horizon:    cfg.Horizon,
		EventQueue: NewEventHeap(),
		Pool:       NewResourcePool(cfg.NumAgents),
		Variates:   variates,
	}
}

// Schedule pushes ev into the event queue, due delay minutes from now.
// The event is stamped with the next insertion ordinal so that events
// sharing a timestamp run in the order they were scheduled.
func (sim *Simulator) Schedule(delay float64, ev Event) {
	if delay < 0 {
		panic(fmt.Sprintf("Schedule: negative delay %v for %T at %.4f", delay, ev, sim.Clock))
	}
	sim.nextOrdinal++
	ev.stamp(sim.Clock+delay, sim.nextOrdinal)
	sim.EventQueue.Schedule(ev)
}

// StartArrivals spawns the arrival generator: it draws the first
// interarrival gap and schedules the first ArrivalEvent. Calling it twice
// panics, a replication has exactly one generator.
func (sim *Simulator) StartArrivals() {
	if sim.started {
		panic("StartArrivals: arrival generator already running")
	}
	sim.started = true
	sim.scheduleNextArrival()
}

// RunUntil dispatches events in (timestamp, ordinal) order until the queue
// is empty or the next event is due after horizon. Events due exactly at
// horizon are dispatched.
func (sim *Simulator) RunUntil(horizon float64) {
	for sim.EventQueue.Len() > 0 {
		if sim.EventQueue.Peek().Timestamp() > horizon {
			break
		}
		// get the next event to be simulated
		ev := sim.EventQueue.PopNext()
		if ev.Timestamp() < sim.Clock {
			panic(fmt.Sprintf("RunUntil: event %T due at %.4f before clock %.4f", ev, ev.Timestamp(), sim.Clock))
		}
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Tracef("[t %09.4f] Executing %T", sim.Clock, ev)
		// process the event
		ev.Execute(sim)
		sim.eventCount++
	}
	logrus.Debugf("[t %09.4f] Simulation ended: %d events, %d customers, %d served, %d pending events",
		sim.Clock, sim.eventCount, len(sim.customers), len(sim.samples), sim.EventQueue.Len())
}

// Run starts the arrival generator if needed and runs to the configured horizon.
func (sim *Simulator) Run() {
	if !sim.started {
		sim.StartArrivals()
	}
	sim.RunUntil(sim.Horizon)
}

// Samples returns the {wait, service} sample of every customer admitted to
// service, in admission order. The returned slice must not be modified.
func (sim *Simulator) Samples() []Sample {
	return sim.samples
}

// Customers returns the customer arena. The returned slice must not be modified.
func (sim *Simulator) Customers() []Customer {
	return sim.customers
}

// Departed returns the number of customers whose completion was dispatched
// before the horizon cutoff.
func (sim *Simulator) Departed() int {
	return sim.departed
}

// Pending returns the number of events left in the queue.
func (sim *Simulator) Pending() int {
	return sim.EventQueue.Len()
}

// EventCount returns the number of events dispatched so far.
func (sim *Simulator) EventCount() int {
	return sim.eventCount
}

func (sim *Simulator) tracePool(kind trace.PoolEventKind, customerID int) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.Record(trace.PoolRecord{
		Clock:      sim.Clock,
		Kind:       kind,
		CustomerID: customerID,
		Active:     sim.Pool.Active(),
		Capacity:   sim.Pool.Capacity(),
		Queued:     sim.Pool.QueueLen(),
	})
}
