package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/callcenter-sim/sim/experiment"
	"github.com/inference-sim/callcenter-sim/sim/trace"
	"github.com/inference-sim/callcenter-sim/sim/workload"
)

// loadExperimentConfig parses an experiment YAML file. Keys left out keep
// their default values. Uses strict field checking: unknown keys are errors.
func loadExperimentConfig(path string) (experiment.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return experiment.Config{}, fmt.Errorf("read experiment config: %w", err)
	}

	cfg := experiment.DefaultConfig()
	// Decode distributions into empty specs so params of the default do
	// not leak into a differently-typed distribution from the file.
	cfg.Arrival, cfg.Service = workload.DistSpec{}, workload.DistSpec{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return experiment.Config{}, fmt.Errorf("parse experiment config %s: %w", path, err)
	}

	def := experiment.DefaultConfig()
	if cfg.Arrival.Type == "" {
		cfg.Arrival = def.Arrival
	}
	if cfg.Service.Type == "" {
		cfg.Service = def.Service
	}
	return cfg, nil
}

// resolveConfig builds the experiment configuration: defaults, then the
// --config file if any, then every flag or CALLCENTER_* variable that was
// explicitly set. The result is validated.
func resolveConfig(v *viper.Viper) (experiment.Config, error) {
	cfg := experiment.DefaultConfig()
	if path := v.GetString("config"); path != "" {
		loaded, err := loadExperimentConfig(path)
		if err != nil {
			return experiment.Config{}, err
		}
		cfg = loaded
	}

	if v.IsSet("seed") {
		cfg.Seed = v.GetInt64("seed")
	}
	if v.IsSet("horizon") {
		cfg.Horizon = v.GetFloat64("horizon")
	}
	if v.IsSet("agents") {
		agents, err := intList(v.Get("agents"))
		if err != nil {
			return experiment.Config{}, fmt.Errorf("agents: %w", err)
		}
		cfg.AgentCounts = agents
	}
	if v.IsSet("replications") {
		cfg.Replications = v.GetInt("replications")
	}
	if v.IsSet("arrival-min") || v.IsSet("arrival-max") {
		cfg.Arrival = workload.Uniform(v.GetFloat64("arrival-min"), v.GetFloat64("arrival-max"))
	}
	if v.IsSet("service-min") || v.IsSet("service-max") {
		cfg.Service = workload.Uniform(v.GetFloat64("service-min"), v.GetFloat64("service-max"))
	}
	if v.IsSet("stream-mode") {
		cfg.StreamMode = experiment.StreamMode(v.GetString("stream-mode"))
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if v.IsSet("trace-level") {
		cfg.TraceLevel = trace.TraceLevel(v.GetString("trace-level"))
	}

	if err := cfg.Validate(); err != nil {
		return experiment.Config{}, err
	}
	return cfg, nil
}

// intList accepts the []int of a changed flag or the comma-separated string
// of an environment variable.
func intList(raw any) ([]int, error) {
	switch val := raw.(type) {
	case []int:
		return val, nil
	case string:
		var out []int
		for _, field := range strings.Split(val, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid agent count %q: %w", field, err)
			}
			out = append(out, n)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}
