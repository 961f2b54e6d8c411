package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/inference-sim/callcenter-sim/sim"
	"github.com/inference-sim/callcenter-sim/sim/experiment"
)

// chartSpec describes one metric-versus-agents chart.
type chartSpec struct {
	file   string
	title  string
	yLabel string
	value  func(experiment.ConfigurationSummary) sim.Metric
}

var charts = []chartSpec{
	{"avg_wait", "Average Wait Time vs Number of Agents", "Average Wait Time (min)",
		func(s experiment.ConfigurationSummary) sim.Metric { return s.AvgWait }},
	{"utilization", "Agent Utilization vs Number of Agents", "Utilization",
		func(s experiment.ConfigurationSummary) sim.Metric { return sim.DefinedMetric(s.Utilization) }},
	{"throughput", "Throughput vs Number of Agents", "Throughput (customers/hour)",
		func(s experiment.ConfigurationSummary) sim.Metric { return sim.DefinedMetric(s.ThroughputPerHour) }},
	{"queue_wait_p95", "95th Percentile Wait Time vs Number of Agents", "95th Percentile Wait (min)",
		func(s experiment.ConfigurationSummary) sim.Metric { return s.QueueWaitP95 }},
}

var plotFormats = map[string]bool{"png": true, "svg": true, "pdf": true}

func validatePlotFormat(format string) error {
	if !plotFormats[format] {
		return fmt.Errorf("unsupported plot format %q (want png, svg or pdf)", format)
	}
	return nil
}

// savePlots renders one line chart per metric into dir and returns the
// files written. Configurations whose metric is undefined are left out of
// that chart; a chart with no defined point is skipped.
func savePlots(dir, format string, summaries []experiment.ConfigurationSummary) ([]string, error) {
	if err := validatePlotFormat(format); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	var files []string
	for _, c := range charts {
		xys := make(plotter.XYs, 0, len(summaries))
		ticks := make([]plot.Tick, 0, len(summaries))
		for _, s := range summaries {
			m := c.value(s)
			if !m.Defined {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(s.NumAgents), Y: m.Value})
			ticks = append(ticks, plot.Tick{Value: float64(s.NumAgents), Label: strconv.Itoa(s.NumAgents)})
		}
		if len(xys) == 0 {
			logrus.Warnf("Skipping %s chart: no configuration has a defined value", c.file)
			continue
		}

		p := plot.New()
		p.Title.Text = c.title
		p.X.Label.Text = "Number of Agents"
		p.Y.Label.Text = c.yLabel
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
		p.Add(plotter.NewGrid())

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return files, fmt.Errorf("%s chart: %w", c.file, err)
		}
		points.GlyphStyle.Radius = vg.Points(3)
		p.Add(line, points)

		path := filepath.Join(dir, c.file+"."+format)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return files, fmt.Errorf("save %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
