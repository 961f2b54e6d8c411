package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inference-sim/callcenter-sim/sim"
	"github.com/inference-sim/callcenter-sim/sim/experiment"
)

// printReport writes the per-replication table, the per-configuration means
// and the analytic M/M/c reference for each staffing level.
func printReport(out io.Writer, records []sim.ReplicationRecord, summaries []experiment.ConfigurationSummary, baselines []experiment.Baseline) {
	fmt.Fprintln(out, "=== Detailed Results ===")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENTS\tREP\tCUSTOMERS\tAVG WAIT (MIN)\tUTILIZATION\tTHROUGHPUT/HR\tP95 WAIT (MIN)\tMAX QUEUE")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%.4f\t%.2f\t%s\t%d\n",
			r.NumAgents, r.Replication, r.TotalCustomers, r.AvgWait, r.Utilization,
			r.ThroughputPerHour, r.QueueWaitP95, r.MaxQueueLength)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "=== Summary Statistics (mean per configuration) ===")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENTS\tREPS\tCUSTOMERS\tAVG WAIT (MIN)\tUTILIZATION\tTHROUGHPUT/HR\tP95 WAIT (MIN)\tMAX QUEUE")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%s\t%.4f\t%.2f\t%s\t%.1f\n",
			s.NumAgents, s.Replications, s.TotalCustomers, s.AvgWait, s.Utilization,
			s.ThroughputPerHour, s.QueueWaitP95, s.MaxQueueLength)
	}
	w.Flush()

	if len(baselines) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "=== M/M/c Reference (mean rates, exponential times) ===")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "AGENTS\tOFFERED LOAD\tAVG WAIT (MIN)\tUTILIZATION\tTHROUGHPUT/HR\tAVG QUEUE")
		for _, b := range baselines {
			fmt.Fprintf(w, "%d\t%.4f\t%s\t%s\t%s\t%s\n",
				b.NumAgents, b.OfferedLoad, b.AvgWait, b.Utilization, b.ThroughputPerHour, b.AvgQueueLength)
		}
		w.Flush()
	}

	for _, s := range summaries {
		if s.UndefinedAvgWait > 0 {
			fmt.Fprintf(out, "note: %d of %d replications with %d agents served no customers\n",
				s.UndefinedAvgWait, s.Replications, s.NumAgents)
		}
	}
	for _, b := range baselines {
		if !b.Stable() {
			fmt.Fprintf(out, "note: offered load %.4f with %d agents has no M/M/c steady state\n", b.OfferedLoad, b.NumAgents)
		}
	}
}
