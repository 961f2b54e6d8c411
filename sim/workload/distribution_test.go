package workload

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMean(t *testing.T, spec DistSpec, n int) float64 {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	s, err := NewDurationSampler(spec)
	require.NoError(t, err)
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	return sum / float64(n)
}

func TestUniformSampler_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewDurationSampler(Uniform(1, 6))
	require.NoError(t, err)
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 1 || v > 6 {
			t.Fatalf("sample %d: %v outside [1, 6]", i, v)
		}
	}
}

func TestSamplers_MeanMatchesParam(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
		want float64
	}{
		{"uniform", Uniform(3, 8), 5.5},
		{"exponential", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 4}}, 4},
		{"gaussian", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": 1, "min": 0, "max": 100}}, 5},
		{"constant", DistSpec{Type: "constant", Params: map[string]float64{"value": 2.5}}, 2.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mean := sampleMean(t, tc.spec, 20000)
			if math.Abs(mean-tc.want)/tc.want > 0.03 {
				t.Errorf("%s mean = %.3f, want ≈ %.3f (within 3%%)", tc.name, mean, tc.want)
			}
		})
	}
}

func TestGaussianSampler_ClampedToRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewDurationSampler(DistSpec{
		Type:   "gaussian",
		Params: map[string]float64{"mean": 5, "std_dev": 10, "min": 1, "max": 9},
	})
	require.NoError(t, err)
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 1 || v > 9 {
			t.Fatalf("sample %d: %v outside [1, 9]", i, v)
		}
	}
}

func TestGaussianSampler_MeanAccountsForClamping(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]float64
		want   float64
	}{
		{"zero width at zero", map[string]float64{"mean": 3, "std_dev": 1, "min": 0, "max": 0}, 0},
		{"zero width", map[string]float64{"mean": 3, "std_dev": 1, "min": 2, "max": 2}, 2},
		{"no spread below min", map[string]float64{"mean": -4, "std_dev": 0, "min": 1, "max": 9}, 1},
		{"no spread inside", map[string]float64{"mean": 4, "std_dev": 0, "min": 1, "max": 9}, 4},
		{"symmetric clamp", map[string]float64{"mean": 5, "std_dev": 10, "min": 1, "max": 9}, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewDurationSampler(DistSpec{Type: "gaussian", Params: tc.params})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, s.Mean(), 1e-9)
		})
	}
}

func TestGaussianSampler_MeanMatchesSamplesWhenMostlyClamped(t *testing.T) {
	// GIVEN a negative location whose mass mostly lands on min
	spec := DistSpec{Type: "gaussian", Params: map[string]float64{"mean": -1, "std_dev": 2, "min": 0, "max": 5}}
	s, err := NewDurationSampler(spec)
	require.NoError(t, err)

	// THEN Mean is positive and agrees with what Sample produces
	assert.Greater(t, s.Mean(), 0.3)
	assert.InDelta(t, s.Mean(), sampleMean(t, spec, 50000), 0.02)
}

func TestLogNormalSampler_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewDurationSampler(DistSpec{Type: "lognormal", Params: map[string]float64{"mu": 1, "sigma": 0.5}})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(1.125), s.Mean(), 1e-12)
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, s.Sample(rng), 0.0)
	}
}

func TestConstantSampler_ConsumesNoDraws(t *testing.T) {
	// GIVEN two identically seeded streams
	a := rand.New(rand.NewSource(1))
	b := rand.New(rand.NewSource(1))
	s, err := NewDurationSampler(DistSpec{Type: "constant", Params: map[string]float64{"value": 3}})
	require.NoError(t, err)

	// WHEN one of them is passed through the constant sampler
	for i := 0; i < 5; i++ {
		assert.Equal(t, 3.0, s.Sample(a))
	}

	// THEN both streams are still in lockstep
	assert.Equal(t, b.Float64(), a.Float64())
}

func TestNewDurationSampler_InvalidSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec DistSpec
	}{
		{"unknown type", DistSpec{Type: "weibull"}},
		{"uniform missing max", DistSpec{Type: "uniform", Params: map[string]float64{"min": 1}}},
		{"uniform inverted", Uniform(6, 1)},
		{"uniform negative", Uniform(-1, 1)},
		{"exponential zero mean", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 0}}},
		{"gaussian negative stddev", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 1, "std_dev": -1, "min": 0, "max": 2}}},
		{"lognormal negative sigma", DistSpec{Type: "lognormal", Params: map[string]float64{"mu": 0, "sigma": -1}}},
		{"constant negative", DistSpec{Type: "constant", Params: map[string]float64{"value": -2}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDurationSampler(tc.spec)
			assert.Error(t, err)
		})
	}
}

func TestDistSpec_String(t *testing.T) {
	assert.Equal(t, "uniform(1, 6)", Uniform(1, 6).String())
	assert.Equal(t, "exponential(mean=4)", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 4}}.String())
}
