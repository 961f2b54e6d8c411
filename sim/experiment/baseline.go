package experiment

import (
	"math"

	"github.com/llm-inferno/queue-analysis/pkg/queue"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/callcenter-sim/sim"
	"github.com/inference-sim/callcenter-sim/sim/workload"
)

// Baseline is the analytic M/M/c reference for one staffing level: Poisson
// arrivals and exponential service at the workload's mean rates. Only the
// means of the configured distributions enter, so it is a yardstick for the
// simulated results rather than a prediction of them.
type Baseline struct {
	NumAgents         int
	OfferedLoad       float64    // mean service / (agents * mean gap)
	AvgWait           sim.Metric // expected wait in minutes; undefined when OfferedLoad >= 1
	AvgQueueLength    sim.Metric // expected number waiting
	Utilization       sim.Metric // expected busy fraction per agent
	ThroughputPerHour sim.Metric
}

// Stable reports whether the queue reaches steady state.
func (b Baseline) Stable() bool { return b.AvgWait.Defined }

const (
	// baselineTailMass bounds the probability mass the chain loses by
	// truncating the wait list.
	baselineTailMass    = 1e-9
	minBaselineHeadroom = 16
	maxBaselineCapacity = 1 << 20
)

// MMcBaseline solves the M/M/c queue at w's mean interarrival gap and mean
// service duration as a birth-death chain whose service rate with n
// customers present is min(n, agents) * mu.
func MMcBaseline(w *workload.Workload, agents int) Baseline {
	b := Baseline{NumAgents: agents}
	meanGap, meanService := w.Arrival.Mean(), w.Service.Mean()
	if agents < 1 || !(meanGap > 0) || meanService < 0 {
		return b
	}
	lambda := 1 / meanGap
	b.OfferedLoad = w.OfferedLoad(agents)
	if meanService == 0 {
		b.AvgWait = sim.DefinedMetric(0)
		b.AvgQueueLength = sim.DefinedMetric(0)
		b.Utilization = sim.DefinedMetric(0)
		b.ThroughputPerHour = sim.DefinedMetric(lambda * 60)
		return b
	}
	if b.OfferedLoad >= 1 {
		return b
	}

	mu := 1 / meanService
	servRate := make([]float32, agents)
	for i := range servRate {
		servRate[i] = float32(float64(i+1) * mu)
	}
	model := queue.NewMM1ModelStateDependent(baselineCapacity(agents, b.OfferedLoad), servRate)
	// mu only gates validity here; servRate drives the chain
	model.Solve(float32(lambda), float32(mu))
	if !model.IsValid() {
		logrus.Warnf("M/M/c baseline for %d agents did not solve: %s", agents, model)
		return b
	}

	b.AvgWait = sim.DefinedMetric(float64(model.GetAvgWaitTime()))
	b.AvgQueueLength = sim.DefinedMetric(float64(model.GetAvgQueueLength()))
	b.Utilization = sim.DefinedMetric(float64(model.GetAvgNumInServers()) / float64(agents))
	b.ThroughputPerHour = sim.DefinedMetric(float64(model.GetThroughput()) * 60)
	return b
}

// baselineCapacity sizes the truncated chain so that states beyond it carry
// less than baselineTailMass: past the agents the probabilities decay
// geometrically with ratio load.
func baselineCapacity(agents int, load float64) int {
	headroom := int(math.Ceil(math.Log(baselineTailMass) / math.Log(load)))
	headroom = max(headroom, minBaselineHeadroom)
	return min(agents+headroom, maxBaselineCapacity)
}
