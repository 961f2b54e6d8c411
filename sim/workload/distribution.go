// Package workload provides the interarrival-gap and service-duration
// distributions of an experiment, and the variate sources that draw from them.
package workload

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// DistSpec parameterizes a duration distribution (all values in minutes).
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Uniform returns the DistSpec of a uniform distribution on [low, high].
func Uniform(low, high float64) DistSpec {
	return DistSpec{Type: "uniform", Params: map[string]float64{"min": low, "max": high}}
}

// String renders the distribution compactly for logs, e.g. uniform(1, 6).
func (d DistSpec) String() string {
	switch d.Type {
	case "uniform":
		return fmt.Sprintf("uniform(%g, %g)", d.Params["min"], d.Params["max"])
	case "exponential":
		return fmt.Sprintf("exponential(mean=%g)", d.Params["mean"])
	case "constant":
		return fmt.Sprintf("constant(%g)", d.Params["value"])
	default:
		return fmt.Sprintf("%s%v", d.Type, d.Params)
	}
}

// DurationSampler generates non-negative duration samples.
type DurationSampler interface {
	// Sample returns a duration >= 0, drawing from rng.
	Sample(rng *rand.Rand) float64
	// Mean returns the distribution's expected value.
	Mean() float64
}

// UniformSampler produces durations uniformly distributed on [min, max].
type UniformSampler struct {
	min, max float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.min + (s.max-s.min)*rng.Float64()
}

func (s *UniformSampler) Mean() float64 { return (s.min + s.max) / 2 }

// ExponentialSampler produces exponentially-distributed durations.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

func (s *ExponentialSampler) Mean() float64 { return s.mean }

// GaussianSampler produces Gaussian durations clamped to [min, max].
type GaussianSampler struct {
	mean, stdDev float64
	min, max     float64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) float64 {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	return math.Min(s.max, math.Max(s.min, val))
}

// Mean returns the mean of the clamped distribution, which is what Sample
// actually produces: mass below min lands on min and mass above max on max.
func (s *GaussianSampler) Mean() float64 {
	if s.min == s.max {
		return s.min
	}
	if s.stdDev == 0 {
		return math.Min(s.max, math.Max(s.min, s.mean))
	}
	alpha := (s.min - s.mean) / s.stdDev
	beta := (s.max - s.mean) / s.stdDev
	below := distuv.UnitNormal.CDF(alpha)
	above := 1 - distuv.UnitNormal.CDF(beta)
	inside := s.mean*(1-below-above) + s.stdDev*(distuv.UnitNormal.Prob(alpha)-distuv.UnitNormal.Prob(beta))
	return s.min*below + s.max*above + inside
}

// LogNormalSampler produces durations exp(mu + sigma*Z).
type LogNormalSampler struct {
	mu, sigma float64
}

func (s *LogNormalSampler) Sample(rng *rand.Rand) float64 {
	val := math.Exp(s.mu + s.sigma*rng.NormFloat64())
	// Guard against +Inf from extreme sigma values
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return math.MaxFloat64
	}
	return val
}

func (s *LogNormalSampler) Mean() float64 { return math.Exp(s.mu + s.sigma*s.sigma/2) }

// ConstantSampler always returns the same fixed value and consumes no draws.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 { return s.value }

func (s *ConstantSampler) Mean() float64 { return s.value }

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewDurationSampler creates a DurationSampler from a DistSpec.
// Parameters that could yield negative or NaN durations are rejected.
func NewDurationSampler(spec DistSpec) (DurationSampler, error) {
	switch spec.Type {
	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := spec.Params["min"], spec.Params["max"]
		if lo < 0 || hi < lo {
			return nil, fmt.Errorf("uniform distribution needs 0 <= min <= max, got min=%g max=%g", lo, hi)
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		mean := spec.Params["mean"]
		if !(mean > 0) {
			return nil, fmt.Errorf("exponential distribution needs mean > 0, got %g", mean)
		}
		return &ExponentialSampler{mean: mean}, nil

	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		s := &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    spec.Params["min"],
			max:    spec.Params["max"],
		}
		if s.min < 0 || s.max < s.min || s.stdDev < 0 {
			return nil, fmt.Errorf("gaussian distribution needs 0 <= min <= max and std_dev >= 0, got %+v", spec.Params)
		}
		return s, nil

	case "lognormal":
		if err := requireParam(spec.Params, "mu", "sigma"); err != nil {
			return nil, err
		}
		if spec.Params["sigma"] < 0 {
			return nil, fmt.Errorf("lognormal distribution needs sigma >= 0, got %g", spec.Params["sigma"])
		}
		return &LogNormalSampler{mu: spec.Params["mu"], sigma: spec.Params["sigma"]}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		val := spec.Params["value"]
		if val < 0 || math.IsNaN(val) {
			return nil, fmt.Errorf("constant distribution needs value >= 0, got %g", val)
		}
		return &ConstantSampler{value: val}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
