package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"schedsim/internal/metrics"
	"schedsim/internal/sched"
)

var comparisonHeader = []string{
	"Algo Name", "Avg Waiting", "Avg Turnaround", "Avg Response", "CPU Util (%)",
	"Throughput", "Context Switches", "Distinct Procs Served", "Interval Size",
}

var traceHeader = []string{"time", "event", "process_id", "ran", "level", "vruntime"}

// WriteComparisonCSV exports one row per policy.
func WriteComparisonCSV(w io.Writer, reports []metrics.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(comparisonHeader); err != nil {
		return errors.Wrap(err, "write comparison header")
	}
	for _, r := range reports {
		rec := []string{
			sched.Title(r.Policy),
			fmt.Sprintf("%.1f", r.AverageWaitingTime),
			fmt.Sprintf("%.1f", r.AverageTurnaroundTime),
			fmt.Sprintf("%.1f", r.AverageResponseTime),
			fmt.Sprintf("%.1f", r.CPUUtilization),
			fmt.Sprintf("%.4f", r.Throughput),
			strconv.Itoa(r.ContextSwitches),
			fmt.Sprintf("%.4f", r.AverageProcessesServed),
			strconv.Itoa(r.IntervalSize),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "write %s row", r.Policy)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush comparison csv")
}

// WriteTraceCSV exports the dispatch trace of a run, one event per row.
func WriteTraceCSV(w io.Writer, events []sched.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return errors.Wrap(err, "write trace header")
	}
	for _, ev := range events {
		rec := []string{
			strconv.Itoa(ev.Time),
			ev.Kind.String(),
			ev.ProcessID,
			strconv.Itoa(ev.Ran),
			strconv.Itoa(ev.Level),
			fmt.Sprintf("%.4f", ev.Vruntime),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "write trace event")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush trace csv")
}
