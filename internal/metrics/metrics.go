// internal/metrics/metrics.go
package metrics

import (
	"schedsim/internal/sched"
)

// Report aggregates the derived statistics of one finished schedule.
type Report struct {
	Policy                 string  `json:"policy"`
	Processes              int     `json:"processes"`
	TotalTime              int     `json:"total_time"`
	AverageWaitingTime     float64 `json:"avg_waiting_time"`
	AverageTurnaroundTime  float64 `json:"avg_turnaround_time"`
	AverageResponseTime    float64 `json:"avg_response_time"`
	CPUUtilization         float64 `json:"cpu_utilization"` // percent
	Throughput             float64 `json:"throughput"`      // processes per time unit
	ContextSwitches        int     `json:"context_switches"`
	IntervalSize           int     `json:"interval_size"`
	AverageProcessesServed float64 `json:"avg_processes_served"`
}

type number interface {
	int | float64
}

// mean returns 0 for an empty list.
func mean[T number](values []T) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

func collect(results []sched.ProcessResult, field func(sched.ProcessResult) int) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = field(r)
	}
	return out
}

// TotalTime is max(finish) - min(arrival) over the results, 0 when empty.
func TotalTime(results []sched.ProcessResult) int {
	if len(results) == 0 {
		return 0
	}
	first, last := results[0].ArrivalTime, results[0].FinishTime
	for _, r := range results[1:] {
		first = min(first, r.ArrivalTime)
		last = max(last, r.FinishTime)
	}
	return last - first
}

// CPUUtilization is the busy share of totalTime in percent. Context switches
// count as overhead time next to totalTime.
func CPUUtilization(results []sched.ProcessResult, totalTime int) float64 {
	burst, switches := 0, 0
	for _, r := range results {
		burst += r.BurstTime
		switches += r.Switches
	}
	if totalTime+switches <= 0 {
		return 0
	}
	return float64(burst) / float64(totalTime+switches) * 100
}

// Throughput is finished processes per time unit.
func Throughput(results []sched.ProcessResult, totalTime int) float64 {
	if totalTime <= 0 {
		return 0
	}
	return float64(len(results)) / float64(totalTime)
}

func AverageResponseTime(results []sched.ProcessResult) float64 {
	return mean(collect(results, func(r sched.ProcessResult) int { return r.StartTime - r.ArrivalTime }))
}

func AverageWaitingTime(results []sched.ProcessResult) float64 {
	return mean(collect(results, func(r sched.ProcessResult) int { return r.WaitingTime }))
}

func AverageTurnaroundTime(results []sched.ProcessResult) float64 {
	return mean(collect(results, func(r sched.ProcessResult) int { return r.TurnaroundTime }))
}

// Summarize derives the report of a schedule. The total time is clamped to
// at least 1 so a degenerate run still yields finite rates.
func Summarize(s *sched.Schedule) Report {
	results := s.Results
	total := max(1, TotalTime(results))
	return Report{
		Policy:                 s.Summary.Policy,
		Processes:              len(results),
		TotalTime:              total,
		AverageWaitingTime:     AverageWaitingTime(results),
		AverageTurnaroundTime:  AverageTurnaroundTime(results),
		AverageResponseTime:    AverageResponseTime(results),
		CPUUtilization:         CPUUtilization(results, total),
		Throughput:             Throughput(results, total),
		ContextSwitches:        s.Summary.TotalSwitches,
		IntervalSize:           s.Summary.IntervalSize,
		AverageProcessesServed: s.Summary.AverageProcessesServed,
	}
}

// SummarizeAll reports every successful outcome of a comparison run, in
// order. Failed outcomes are skipped.
func SummarizeAll(outcomes []sched.Outcome) []Report {
	reports := make([]Report, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil || o.Schedule == nil {
			continue
		}
		reports = append(reports, Summarize(o.Schedule))
	}
	return reports
}
