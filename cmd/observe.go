package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inference-sim/callcenter-sim/sim/experiment"
)

// experimentMetrics collects Prometheus metrics for one experiment run on a
// private registry, so repeated runs in one process never collide.
type experimentMetrics struct {
	registry *prometheus.Registry

	// Per replication
	replications      *prometheus.CounterVec
	emptyReplications *prometheus.CounterVec
	customersServed   *prometheus.CounterVec
	customersWaiting  *prometheus.CounterVec
	agentGrants       *prometheus.CounterVec
	agentReleases     *prometheus.CounterVec
	eventsDispatched  prometheus.Counter
	replicationWait   *prometheus.HistogramVec

	// Per configuration means
	avgWait         *prometheus.GaugeVec
	utilization     *prometheus.GaugeVec
	throughput      *prometheus.GaugeVec
	queueWaitP95    *prometheus.GaugeVec
	maxQueueLength  *prometheus.GaugeVec
	durationSeconds prometheus.Gauge

	// Analytic M/M/c reference
	offeredLoad    *prometheus.GaugeVec
	mmcAvgWait     *prometheus.GaugeVec
	mmcUtilization *prometheus.GaugeVec
}

func newExperimentMetrics() *experimentMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	agents := []string{"agents"}
	return &experimentMetrics{
		registry: reg,
		replications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "replications_total",
			Help:      "Replications completed per agent count",
		}, agents),
		emptyReplications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "empty_replications_total",
			Help:      "Replications that served no customers, leaving wait statistics undefined",
		}, agents),
		customersServed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "customers_served_total",
			Help:      "Customers admitted to service before the horizon",
		}, agents),
		customersWaiting: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "customers_waiting_at_horizon_total",
			Help:      "Customers still waiting for an agent when the horizon was reached",
		}, agents),
		agentGrants: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "agent_grants_total",
			Help:      "Agents granted to customers, on arrival or by handoff from a release",
		}, agents),
		agentReleases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "agent_releases_total",
			Help:      "Agents released by completed services",
		}, agents),
		eventsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callcenter",
			Name:      "events_dispatched_total",
			Help:      "Simulation events dispatched across all replications",
		}),
		replicationWait: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "callcenter",
			Name:      "replication_avg_wait_minutes",
			Help:      "Distribution of per-replication average wait",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 20, 50, 100},
		}, agents),
		avgWait: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "avg_wait_minutes",
			Help:      "Mean average wait across replications",
		}, agents),
		utilization: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "utilization_ratio",
			Help:      "Mean agent utilization across replications",
		}, agents),
		throughput: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "throughput_per_hour",
			Help:      "Mean customers served per simulated hour",
		}, agents),
		queueWaitP95: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "queue_wait_p95_minutes",
			Help:      "Mean 95th percentile wait across replications",
		}, agents),
		maxQueueLength: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "max_queue_length",
			Help:      "Mean longest wait list across replications",
		}, agents),
		durationSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "experiment_duration_seconds",
			Help:      "Wall-clock time spent running the experiment",
		}),
		offeredLoad: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "offered_load_ratio",
			Help:      "Mean service time over agents times mean interarrival gap",
		}, agents),
		mmcAvgWait: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "mmc_avg_wait_minutes",
			Help:      "Expected wait of the M/M/c queue at the experiment's mean rates",
		}, agents),
		mmcUtilization: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "callcenter",
			Name:      "mmc_utilization_ratio",
			Help:      "Expected agent utilization of the M/M/c queue at the experiment's mean rates",
		}, agents),
	}
}

// ObserveReplication records one finished replication.
func (m *experimentMetrics) ObserveReplication(r experiment.ReplicationReport) {
	agents := strconv.Itoa(r.Record.NumAgents)
	m.replications.WithLabelValues(agents).Inc()
	m.customersServed.WithLabelValues(agents).Add(float64(r.Record.TotalCustomers))
	m.customersWaiting.WithLabelValues(agents).Add(float64(r.Waiting))
	m.agentGrants.WithLabelValues(agents).Add(float64(r.Grants))
	m.agentReleases.WithLabelValues(agents).Add(float64(r.Releases))
	m.eventsDispatched.Add(float64(r.Events))
	if r.Record.Empty() {
		m.emptyReplications.WithLabelValues(agents).Inc()
		return
	}
	m.replicationWait.WithLabelValues(agents).Observe(r.Record.AvgWait.Value)
}

// ObserveSummaries sets the per-configuration gauges. Undefined wait
// statistics are not exported.
func (m *experimentMetrics) ObserveSummaries(summaries []experiment.ConfigurationSummary, elapsed time.Duration) {
	for _, s := range summaries {
		agents := strconv.Itoa(s.NumAgents)
		if s.AvgWait.Defined {
			m.avgWait.WithLabelValues(agents).Set(s.AvgWait.Value)
		}
		if s.QueueWaitP95.Defined {
			m.queueWaitP95.WithLabelValues(agents).Set(s.QueueWaitP95.Value)
		}
		m.utilization.WithLabelValues(agents).Set(s.Utilization)
		m.throughput.WithLabelValues(agents).Set(s.ThroughputPerHour)
		m.maxQueueLength.WithLabelValues(agents).Set(s.MaxQueueLength)
	}
	m.durationSeconds.Set(elapsed.Seconds())
}

// ObserveBaselines sets the analytic reference gauges. Staffing levels
// without a steady state only export their offered load.
func (m *experimentMetrics) ObserveBaselines(baselines []experiment.Baseline) {
	for _, b := range baselines {
		agents := strconv.Itoa(b.NumAgents)
		m.offeredLoad.WithLabelValues(agents).Set(b.OfferedLoad)
		if !b.Stable() {
			continue
		}
		m.mmcAvgWait.WithLabelValues(agents).Set(b.AvgWait.Value)
		m.mmcUtilization.WithLabelValues(agents).Set(b.Utilization.Value)
	}
}

// WriteTextfile writes every collected metric to path in the Prometheus
// text exposition format, e.g. for the node_exporter textfile collector.
func (m *experimentMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
