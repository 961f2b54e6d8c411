package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/callcenter-sim/sim"
	"github.com/inference-sim/callcenter-sim/sim/experiment"
)

func TestSavePlots_OneChartPerMetric(t *testing.T) {
	// GIVEN summaries for three staffing levels
	summaries := []experiment.ConfigurationSummary{
		{NumAgents: 2, AvgWait: sim.DefinedMetric(6), Utilization: 0.9, ThroughputPerHour: 17, QueueWaitP95: sim.DefinedMetric(15)},
		{NumAgents: 3, AvgWait: sim.DefinedMetric(1), Utilization: 0.6, ThroughputPerHour: 17.1, QueueWaitP95: sim.DefinedMetric(4)},
		{NumAgents: 5, AvgWait: sim.DefinedMetric(0.1), Utilization: 0.36, ThroughputPerHour: 17.2, QueueWaitP95: sim.DefinedMetric(0.5)},
	}
	dir := filepath.Join(t.TempDir(), "charts")

	// WHEN saved as PNG
	files, err := savePlots(dir, "png", summaries)

	// THEN four charts exist
	require.NoError(t, err)
	require.Len(t, files, 4)
	for _, f := range files {
		assert.FileExists(t, f)
		assert.Equal(t, ".png", filepath.Ext(f))
	}
}

func TestSavePlots_SkipsChartWithoutDefinedValues(t *testing.T) {
	// GIVEN a configuration that served nobody
	summaries := []experiment.ConfigurationSummary{{NumAgents: 2}}

	// WHEN saved
	files, err := savePlots(t.TempDir(), "svg", summaries)

	// THEN only the always-defined utilization and throughput charts are drawn
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "utilization.svg", filepath.Base(files[0]))
	assert.Equal(t, "throughput.svg", filepath.Base(files[1]))
}

func TestSavePlots_UnsupportedFormat(t *testing.T) {
	_, err := savePlots(t.TempDir(), "bmp", nil)
	assert.Error(t, err)
}
