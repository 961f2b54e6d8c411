// Reduces one replication's raw {wait, service} samples into the summary
// record consumed by export and reporting.

package sim

import (
	"fmt"
	"math"
	"strconv"
)

// QueueWaitPercentile is the percentile reported as queue_95th_percentile.
const QueueWaitPercentile = 95.0

// Metric is a float that may be undefined, for statistics that have no
// value when a replication served nobody. The zero value is undefined.
type Metric struct {
	Value   float64
	Defined bool
}

// DefinedMetric wraps v as a defined Metric.
func DefinedMetric(v float64) Metric {
	return Metric{Value: v, Defined: true}
}

// Undefined is the sentinel for a statistic with no samples.
var Undefined = Metric{}

// MetricFrom wraps v, mapping NaN to Undefined.
func MetricFrom(v float64) Metric {
	if math.IsNaN(v) {
		return Undefined
	}
	return DefinedMetric(v)
}

// Format renders the value with strconv's 'f' format, or "" when undefined.
func (m Metric) Format(prec int) string {
	if !m.Defined {
		return ""
	}
	return strconv.FormatFloat(m.Value, 'f', prec, 64)
}

func (m Metric) String() string {
	if !m.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", m.Value)
}

// ReplicationRecord summarizes one completed replication. Immutable once
// produced.
type ReplicationRecord struct {
	NumAgents         int     // Agent count of the configuration
	Replication       int     // 1-based replication index within the configuration
	TotalCustomers    int     // Customers admitted to service
	AvgWait           Metric  // Mean wait in minutes; undefined when TotalCustomers == 0
	Utilization       float64 // Service time / (agents * horizon)
	ThroughputPerHour float64 // Customers served per simulated hour
	QueueWaitP95      Metric  // 95th percentile wait in minutes; undefined when TotalCustomers == 0
	MaxQueueLength    int     // Longest wait list observed
}

// Empty reports whether the replication served no customers, in which case
// AvgWait and QueueWaitP95 are undefined.
func (r ReplicationRecord) Empty() bool {
	return r.TotalCustomers == 0
}

// Summarize reduces the samples of one replication to its record.
// horizon is in minutes and must be positive; agents must be positive.
func Summarize(samples []Sample, agents int, horizon float64, replication int) ReplicationRecord {
	if agents <= 0 || horizon <= 0 {
		panic(fmt.Sprintf("Summarize: agents=%d and horizon=%v must be positive", agents, horizon))
	}
	waits := make([]float64, len(samples))
	services := make([]float64, len(samples))
	for i, s := range samples {
		if s.Wait < 0 {
			panic(fmt.Sprintf("Summarize: negative wait %.6f in sample %d", s.Wait, i))
		}
		waits[i] = s.Wait
		services[i] = s.Service
	}

	return ReplicationRecord{
		NumAgents:         agents,
		Replication:       replication,
		TotalCustomers:    len(samples),
		AvgWait:           MetricFrom(CalculateMean(waits)),
		Utilization:       CalculateSum(services) / (float64(agents) * horizon),
		ThroughputPerHour: float64(len(samples)) / (horizon / 60),
		QueueWaitP95:      MetricFrom(CalculatePercentile(waits, QueueWaitPercentile)),
	}
}

// SummarizeSimulator summarizes a finished Simulator, filling in the peak
// wait-list length from its pool.
func SummarizeSimulator(s *Simulator, replication int) ReplicationRecord {
	rec := Summarize(s.Samples(), s.Pool.Capacity(), s.Horizon, replication)
	rec.MaxQueueLength = s.Pool.PeakQueueLen()
	return rec
}
