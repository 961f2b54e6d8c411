package workload

import (
	"fmt"
	"math/rand"
)

// RandomVariates draws interarrival gaps and service durations from one
// explicit *rand.Rand. Draws happen in whatever order the simulation asks
// for them, so sharing one RandomVariates (or one rng) across replications
// consumes a single stream in a fixed order.
type RandomVariates struct {
	rng     *rand.Rand
	arrival DurationSampler
	service DurationSampler
}

// NewRandomVariates binds arrival and service samplers to rng.
func NewRandomVariates(rng *rand.Rand, arrival, service DurationSampler) *RandomVariates {
	if rng == nil {
		panic("NewRandomVariates: rng must not be nil")
	}
	return &RandomVariates{rng: rng, arrival: arrival, service: service}
}

// InterarrivalGap draws the time until the next arrival.
func (v *RandomVariates) InterarrivalGap() float64 {
	return v.arrival.Sample(v.rng)
}

// ServiceDuration draws how long an agent spends with a customer.
func (v *RandomVariates) ServiceDuration() float64 {
	return v.service.Sample(v.rng)
}

// Workload bundles the validated arrival and service samplers of an experiment.
type Workload struct {
	Arrival DurationSampler
	Service DurationSampler
}

// NewWorkload builds samplers for both specs. The arrival distribution must
// have a positive mean after any clamping, otherwise the arrival generator
// could stall the clock forever.
func NewWorkload(arrival, service DistSpec) (*Workload, error) {
	a, err := NewDurationSampler(arrival)
	if err != nil {
		return nil, fmt.Errorf("arrival distribution: %w", err)
	}
	if !(a.Mean() > 0) {
		return nil, fmt.Errorf("arrival distribution: mean interarrival gap must be > 0, got %g", a.Mean())
	}
	s, err := NewDurationSampler(service)
	if err != nil {
		return nil, fmt.Errorf("service distribution: %w", err)
	}
	return &Workload{Arrival: a, Service: s}, nil
}

// Variates returns a RandomVariates drawing this workload from rng.
func (w *Workload) Variates(rng *rand.Rand) *RandomVariates {
	return NewRandomVariates(rng, w.Arrival, w.Service)
}

// OfferedLoad returns the expected fraction of agent time demanded:
// mean service / (agents * mean interarrival gap).
func (w *Workload) OfferedLoad(agents int) float64 {
	return w.Service.Mean() / (float64(agents) * w.Arrival.Mean())
}
