// Package experiment drives replicated simulation runs across staffing
// levels and aggregates their records.
package experiment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/callcenter-sim/sim"
	"github.com/inference-sim/callcenter-sim/sim/trace"
	"github.com/inference-sim/callcenter-sim/sim/workload"
)

// ReplicationReport is everything known about one finished replication.
type ReplicationReport struct {
	Record   sim.ReplicationRecord
	Events   int                 // events dispatched
	Arrived  int                 // customers spawned before the horizon
	Departed int                 // completions dispatched before the horizon
	Waiting  int                 // customers still in the wait list at the horizon
	Grants   int                 // agents granted, on arrival or by handoff
	Releases int                 // agents released by completed services
	Trace    *trace.TraceSummary // nil unless TraceLevel is "pool"
}

// Harness runs an experiment. It is not reusable across concurrent Run calls.
type Harness struct {
	cfg      Config
	workload *workload.Workload

	// OnReplication, when set, is called once per replication in record
	// order after all replications have finished.
	OnReplication func(ReplicationReport)
}

// NewHarness validates cfg and prepares its samplers.
func NewHarness(cfg Config) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := workload.NewWorkload(cfg.Arrival, cfg.Service)
	if err != nil {
		return nil, err
	}
	return &Harness{cfg: cfg, workload: w}, nil
}

// Run is shorthand for NewHarness(cfg) followed by Run(ctx).
func Run(ctx context.Context, cfg Config) ([]sim.ReplicationRecord, error) {
	h, err := NewHarness(cfg)
	if err != nil {
		return nil, err
	}
	return h.Run(ctx)
}

// job is one (configuration, replication) pair in record order.
type job struct {
	agents      int
	replication int
	rng         *rand.Rand
}

// Run executes every replication of every configuration and returns one
// record per replication, ordered configuration-then-replication.
// Cancelling ctx stops the experiment between replications.
func (h *Harness) Run(ctx context.Context) ([]sim.ReplicationRecord, error) {
	start := time.Now()
	jobs := h.plan()

	var reports []ReplicationReport
	var err error
	if h.cfg.mode() == StreamPartitioned {
		reports, err = h.runParallel(ctx, jobs)
	} else {
		reports, err = h.runSequential(ctx, jobs)
	}
	if err != nil {
		return nil, err
	}

	records := make([]sim.ReplicationRecord, len(reports))
	for i, r := range reports {
		records[i] = r.Record
		if h.OnReplication != nil {
			h.OnReplication(r)
		}
	}
	logrus.Infof("Experiment complete: %d replications in %v", len(records), time.Since(start))
	return records, nil
}

// plan lays out the jobs in record order and binds their random streams.
// In shared mode every job holds the same *rand.Rand.
func (h *Harness) plan() []job {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(h.cfg.Seed))
	logrus.Debugf("Planning %d configurations from simulation key %d (%s streams)",
		len(h.cfg.AgentCounts), rng.Key(), h.cfg.mode())
	jobs := make([]job, 0, len(h.cfg.AgentCounts)*h.cfg.Replications)
	for _, agents := range h.cfg.AgentCounts {
		for rep := 1; rep <= h.cfg.Replications; rep++ {
			j := job{agents: agents, replication: rep}
			if h.cfg.mode() == StreamPartitioned {
				j.rng = rng.ForReplication(agents, rep)
			} else {
				j.rng = rng.ForSubsystem(sim.SubsystemShared)
			}
			jobs = append(jobs, j)
		}
	}
	return jobs
}

func (h *Harness) runSequential(ctx context.Context, jobs []job) ([]ReplicationReport, error) {
	reports := make([]ReplicationReport, 0, len(jobs))
	lastAgents := 0
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if j.agents != lastAgents {
			h.logConfiguration(j.agents)
			lastAgents = j.agents
		}
		reports = append(reports, h.replicate(j))
	}
	return reports, nil
}

// runParallel runs jobs on a bounded worker pool. Each job owns its stream
// and Simulator; results land at the job's own index, so the output order
// does not depend on scheduling.
func (h *Harness) runParallel(ctx context.Context, jobs []job) ([]ReplicationReport, error) {
	for _, agents := range h.cfg.AgentCounts {
		h.logConfiguration(agents)
	}
	reports := make([]ReplicationReport, len(jobs))
	next := make(chan int)

	var wg sync.WaitGroup
	for range h.cfg.workers(len(jobs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				reports[i] = h.replicate(jobs[i])
			}
		}()
	}

	var err error
feed:
	for i := range jobs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case next <- i:
		}
	}
	close(next)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// replicate runs one replication from a fresh Simulator and pool.
func (h *Harness) replicate(j job) ReplicationReport {
	s := sim.NewSimulator(sim.SimConfig{Horizon: h.cfg.Horizon, NumAgents: j.agents}, h.workload.Variates(j.rng))
	if h.cfg.TraceLevel == trace.TraceLevelPool {
		s.Trace = trace.NewPoolTrace()
	}
	s.Run()

	rec := sim.SummarizeSimulator(s, j.replication)
	if rec.Empty() {
		logrus.Warnf("agents=%d replication=%d served no customers; avg wait and p95 are undefined", j.agents, j.replication)
	}
	logrus.Debugf("agents=%d replication=%d: customers=%d avg_wait=%s util=%.4f",
		j.agents, j.replication, rec.TotalCustomers, rec.AvgWait, rec.Utilization)

	report := ReplicationReport{
		Record:   rec,
		Events:   s.EventCount(),
		Arrived:  len(s.Customers()),
		Departed: s.Departed(),
		Waiting:  s.Pool.QueueLen(),
		Grants:   s.Pool.Grants(),
		Releases: s.Pool.Releases(),
	}
	if s.Trace != nil {
		report.Trace = trace.Summarize(s.Trace)
	}
	return report
}

// Baseline returns the analytic M/M/c reference for agents at this
// experiment's mean arrival and service rates.
func (h *Harness) Baseline(agents int) Baseline {
	return MMcBaseline(h.workload, agents)
}

// Baselines returns one Baseline per configured agent count, in config order.
func (h *Harness) Baselines() []Baseline {
	out := make([]Baseline, len(h.cfg.AgentCounts))
	for i, agents := range h.cfg.AgentCounts {
		out[i] = h.Baseline(agents)
	}
	return out
}

func (h *Harness) logConfiguration(agents int) {
	b := h.Baseline(agents)
	if !b.Stable() {
		logrus.Infof("Running simulation with %d agents (offered load %.3f, %d replications); M/M/c queue is unstable",
			agents, b.OfferedLoad, h.cfg.Replications)
		return
	}
	logrus.Infof("Running simulation with %d agents (offered load %.3f, %d replications); M/M/c expects wait %.3f min, utilization %.3f",
		agents, b.OfferedLoad, h.cfg.Replications, b.AvgWait.Value, b.Utilization.Value)
}
