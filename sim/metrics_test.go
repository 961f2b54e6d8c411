package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_WorkedExample(t *testing.T) {
	// GIVEN the samples of 1 agent over 10 minutes: waits 0, 1, 0 and services 3, 1, 1
	samples := []Sample{{Wait: 0, Service: 3}, {Wait: 1, Service: 1}, {Wait: 0, Service: 1}}

	// WHEN summarized
	rec := Summarize(samples, 1, 10, 7)

	// THEN every field follows the documented formulas
	assert.Equal(t, 1, rec.NumAgents)
	assert.Equal(t, 7, rec.Replication)
	assert.Equal(t, 3, rec.TotalCustomers)
	assert.InDelta(t, 1.0/3.0, rec.AvgWait.Value, 1e-12)
	assert.InDelta(t, 0.5, rec.Utilization, 1e-12)
	assert.InDelta(t, 18.0, rec.ThroughputPerHour, 1e-12)
	assert.InDelta(t, 0.9, rec.QueueWaitP95.Value, 1e-12)
	assert.True(t, rec.AvgWait.Defined)
	assert.True(t, rec.QueueWaitP95.Defined)
	assert.False(t, rec.Empty())
}

func TestSummarize_AllZeroWaits(t *testing.T) {
	// GIVEN agents always free
	samples := []Sample{{Wait: 0, Service: 4}, {Wait: 0, Service: 5}}

	// WHEN summarized over 480 minutes with 5 agents
	rec := Summarize(samples, 5, 480, 1)

	// THEN waits are defined zeros, not undefined
	assert.Equal(t, DefinedMetric(0), rec.AvgWait)
	assert.Equal(t, DefinedMetric(0), rec.QueueWaitP95)
	assert.InDelta(t, 9.0/2400.0, rec.Utilization, 1e-15)
	assert.InDelta(t, 0.25, rec.ThroughputPerHour, 1e-15)
}

func TestSummarize_NoSamples_UndefinedWaits(t *testing.T) {
	rec := Summarize(nil, 3, 480, 2)

	assert.True(t, rec.Empty())
	assert.Equal(t, Undefined, rec.AvgWait)
	assert.Equal(t, Undefined, rec.QueueWaitP95)
	assert.Equal(t, 0.0, rec.Utilization)
	assert.Equal(t, 0.0, rec.ThroughputPerHour)
}

func TestSummarize_InvalidArgumentsPanic(t *testing.T) {
	assert.Panics(t, func() { Summarize(nil, 0, 480, 1) })
	assert.Panics(t, func() { Summarize(nil, 2, 0, 1) })
	assert.Panics(t, func() { Summarize([]Sample{{Wait: -0.1, Service: 1}}, 2, 480, 1) })
}

func TestSummarize_UtilizationMayExceedOne(t *testing.T) {
	// Service started before the horizon but running past it still counts.
	rec := Summarize([]Sample{{Wait: 0, Service: 15}}, 1, 10, 1)
	assert.InDelta(t, 1.5, rec.Utilization, 1e-12)
}

func TestMetric_Format(t *testing.T) {
	tests := []struct {
		name string
		m    Metric
		prec int
		want string
	}{
		{"undefined renders empty", Undefined, 4, ""},
		{"zero", DefinedMetric(0), 2, "0.00"},
		{"rounded", DefinedMetric(1.23456), 3, "1.235"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Format(tt.prec))
		})
	}
}

func TestMetric_String(t *testing.T) {
	assert.Equal(t, "undefined", Undefined.String())
	assert.Equal(t, "0.3333", DefinedMetric(1.0/3.0).String())
}

func TestMetricFrom_NaNIsUndefined(t *testing.T) {
	require.False(t, MetricFrom(math.NaN()).Defined)
	m := MetricFrom(2.5)
	assert.True(t, m.Defined)
	assert.Equal(t, 2.5, m.Value)
	assert.Equal(t, Undefined, Metric{}, "zero value is undefined")
}
