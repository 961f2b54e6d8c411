package experiment

import (
	"github.com/inference-sim/callcenter-sim/sim"
)

// ConfigurationSummary is the mean of each metric across the replications
// of one staffing level. Undefined entries are skipped, never counted as
// zero; a metric with no defined entry stays undefined.
type ConfigurationSummary struct {
	NumAgents         int
	Replications      int
	TotalCustomers    float64 // mean customers served per replication
	AvgWait           sim.Metric
	Utilization       float64
	ThroughputPerHour float64
	QueueWaitP95      sim.Metric
	MaxQueueLength    float64

	UndefinedAvgWait      int // replications whose AvgWait was undefined
	UndefinedQueueWaitP95 int // replications whose QueueWaitP95 was undefined
}

// SummarizeByConfiguration groups records by agent count, in first-seen
// order, and averages each metric.
func SummarizeByConfiguration(records []sim.ReplicationRecord) []ConfigurationSummary {
	order := make([]int, 0)
	groups := make(map[int][]sim.ReplicationRecord)
	for _, r := range records {
		if _, ok := groups[r.NumAgents]; !ok {
			order = append(order, r.NumAgents)
		}
		groups[r.NumAgents] = append(groups[r.NumAgents], r)
	}

	summaries := make([]ConfigurationSummary, 0, len(order))
	for _, agents := range order {
		summaries = append(summaries, summarizeGroup(agents, groups[agents]))
	}
	return summaries
}

func summarizeGroup(agents int, recs []sim.ReplicationRecord) ConfigurationSummary {
	var customers, utils, throughputs, queues, waits, p95s []float64
	s := ConfigurationSummary{NumAgents: agents, Replications: len(recs)}
	for _, r := range recs {
		customers = append(customers, float64(r.TotalCustomers))
		utils = append(utils, r.Utilization)
		throughputs = append(throughputs, r.ThroughputPerHour)
		queues = append(queues, float64(r.MaxQueueLength))
		if r.AvgWait.Defined {
			waits = append(waits, r.AvgWait.Value)
		} else {
			s.UndefinedAvgWait++
		}
		if r.QueueWaitP95.Defined {
			p95s = append(p95s, r.QueueWaitP95.Value)
		} else {
			s.UndefinedQueueWaitP95++
		}
	}
	s.TotalCustomers = sim.CalculateMean(customers)
	s.Utilization = sim.CalculateMean(utils)
	s.ThroughputPerHour = sim.CalculateMean(throughputs)
	s.MaxQueueLength = sim.CalculateMean(queues)
	s.AvgWait = sim.MetricFrom(sim.CalculateMean(waits))
	s.QueueWaitP95 = sim.MetricFrom(sim.CalculateMean(p95s))
	return s
}
