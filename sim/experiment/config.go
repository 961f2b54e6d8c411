package experiment

import (
	"fmt"

	"github.com/inference-sim/callcenter-sim/sim/trace"
	"github.com/inference-sim/callcenter-sim/sim/workload"
)

// StreamMode selects how replications obtain their random draws.
type StreamMode string

const (
	// StreamShared threads one seeded stream through every replication in
	// configuration → replication → arrival → service order. Sequential only.
	StreamShared StreamMode = "shared"
	// StreamPartitioned gives each (agents, replication) pair its own
	// sub-stream derived from the seed, so replications may run in parallel.
	StreamPartitioned StreamMode = "partitioned"
)

// Defaults of the reference staffing study: an 8-hour shift, a caller every
// 1-6 minutes, 3-8 minute calls, 2/3/5 agents, 30 replications each.
const (
	DefaultHorizon      = 480.0
	DefaultReplications = 30
	DefaultSeed         = 42
)

// DefaultAgentCounts returns the staffing levels tested by default.
func DefaultAgentCounts() []int { return []int{2, 3, 5} }

// Config describes a whole experiment: every staffing level, replicated.
type Config struct {
	Horizon      float64           `yaml:"horizon"` // simulated minutes
	Arrival      workload.DistSpec `yaml:"arrival"` // interarrival gap distribution
	Service      workload.DistSpec `yaml:"service"` // service duration distribution
	AgentCounts  []int             `yaml:"agent_counts"`
	Replications int               `yaml:"replications"`
	Seed         int64             `yaml:"seed"`
	StreamMode   StreamMode        `yaml:"stream_mode,omitempty"`
	Workers      int               `yaml:"workers,omitempty"` // partitioned mode only; 0 = one per replication up to 8
	TraceLevel   trace.TraceLevel  `yaml:"trace_level,omitempty"`
}

// DefaultConfig returns the reference study configuration.
func DefaultConfig() Config {
	return Config{
		Horizon:      DefaultHorizon,
		Arrival:      workload.Uniform(1, 6),
		Service:      workload.Uniform(3, 8),
		AgentCounts:  DefaultAgentCounts(),
		Replications: DefaultReplications,
		Seed:         DefaultSeed,
		StreamMode:   StreamShared,
	}
}

// Validate checks the configuration and returns an error wrapping
// ErrInvalidConfig and the specific cause.
func (c Config) Validate() error {
	if !(c.Horizon > 0) {
		return fmt.Errorf("%w: %w (got %v)", ErrInvalidConfig, ErrInvalidHorizon, c.Horizon)
	}
	if len(c.AgentCounts) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoAgentCounts)
	}
	seen := make(map[int]bool, len(c.AgentCounts))
	for _, n := range c.AgentCounts {
		if n <= 0 {
			return fmt.Errorf("%w: %w (got %d)", ErrInvalidConfig, ErrInvalidAgentCount, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: %w (%d)", ErrInvalidConfig, ErrDuplicateAgentCount, n)
		}
		seen[n] = true
	}
	if c.Replications <= 0 {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidConfig, ErrInvalidReplications, c.Replications)
	}
	switch c.StreamMode {
	case StreamShared, StreamPartitioned, "":
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrInvalidStreamMode, c.StreamMode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidConfig, ErrInvalidWorkers, c.Workers)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrInvalidTraceLevel, c.TraceLevel)
	}
	if _, err := workload.NewWorkload(c.Arrival, c.Service); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// mode returns the effective stream mode (empty means shared).
func (c Config) mode() StreamMode {
	if c.StreamMode == "" {
		return StreamShared
	}
	return c.StreamMode
}

// workers returns the effective worker count for partitioned mode.
func (c Config) workers(jobs int) int {
	w := c.Workers
	if w == 0 {
		w = 8
	}
	return min(w, jobs)
}
