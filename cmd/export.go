package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/inference-sim/callcenter-sim/sim"
)

// recordHeader is the column order of the detailed results file.
var recordHeader = []string{
	"num_agents",
	"replication",
	"total_customers",
	"avg_wait_min",
	"utilization",
	"throughput_per_hr",
	"queue_95th_percentile",
	"max_queue_length",
}

// writeRecordsCSV writes one row per replication to path.
func writeRecordsCSV(path string, records []sim.ReplicationRecord) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return writeRecords(f, records)
}

// writeRecords encodes records as CSV with a header row. Undefined metrics
// are written as empty cells.
func writeRecords(w io.Writer, records []sim.ReplicationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.NumAgents),
			strconv.Itoa(r.Replication),
			strconv.Itoa(r.TotalCustomers),
			r.AvgWait.Format(-1),
			formatFloat(r.Utilization),
			formatFloat(r.ThroughputPerHour),
			r.QueueWaitP95.Format(-1),
			strconv.Itoa(r.MaxQueueLength),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
