package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"schedsim/internal/metrics"
	"schedsim/internal/sched"
)

// RenderSchedule prints the per-process results of one run with the averages
// in the footer.
func RenderSchedule(w io.Writer, rep metrics.Report, s *sched.Schedule) {
	_, _ = fmt.Fprintf(w, "%s schedule\n", sched.Title(rep.Policy))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Start", "Finish", "Wait", "Turnaround", "Response", "Switches"})
	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			r.ProcessID,
			strconv.Itoa(r.ArrivalTime),
			strconv.Itoa(r.BurstTime),
			strconv.Itoa(r.StartTime),
			strconv.Itoa(r.FinishTime),
			strconv.Itoa(r.WaitingTime),
			strconv.Itoa(r.TurnaroundTime),
			strconv.Itoa(r.ResponseTime),
			strconv.Itoa(r.Switches),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "",
		fmt.Sprintf("Average\n%.2f", rep.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", rep.AverageTurnaroundTime),
		fmt.Sprintf("Average\n%.2f", rep.AverageResponseTime),
		fmt.Sprintf("Total\n%d", rep.ContextSwitches)})
	table.Render()

	_, _ = fmt.Fprintf(w, "CPU utilization: %.1f%%  Throughput: %.4f procs/unit  Interval size: %d  Processes served per interval: %.4f\n",
		rep.CPUUtilization, rep.Throughput, rep.IntervalSize, rep.AverageProcessesServed)
}

// RenderComparison prints one row per policy.
func RenderComparison(w io.Writer, reports []metrics.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Avg Wait", "Avg Turnaround", "Avg Response", "CPU Util", "Throughput", "Switches"})
	for _, r := range reports {
		table.Append([]string{
			sched.Title(r.Policy),
			fmt.Sprintf("%.2f", r.AverageWaitingTime),
			fmt.Sprintf("%.2f", r.AverageTurnaroundTime),
			fmt.Sprintf("%.2f", r.AverageResponseTime),
			fmt.Sprintf("%.1f%%", r.CPUUtilization),
			fmt.Sprintf("%.4f", r.Throughput),
			strconv.Itoa(r.ContextSwitches),
		})
	}
	table.Render()
}
