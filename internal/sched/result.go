package sched

import "sort"

// notStarted marks a result whose process has not been dispatched yet.
const notStarted = -1

// ProcessResult holds the timing outcome of one process.
type ProcessResult struct {
	ProcessID      string `json:"process_id"`
	ArrivalTime    int    `json:"arrival_time"`
	BurstTime      int    `json:"burst_time"`
	StartTime      int    `json:"start_time"`
	FinishTime     int    `json:"finish_time"`
	WaitingTime    int    `json:"waiting_time"`
	TurnaroundTime int    `json:"turnaround_time"`
	ResponseTime   int    `json:"response_time"`
	Switches       int    `json:"switches"` // context switches away from this process
}

func newResult(p Process) ProcessResult {
	return ProcessResult{
		ProcessID:   p.ID,
		ArrivalTime: p.ArrivalTime,
		BurstTime:   p.BurstTime,
		StartTime:   notStarted,
	}
}

func (r *ProcessResult) finalize(finish int) {
	r.FinishTime = finish
	r.TurnaroundTime = finish - r.ArrivalTime
	r.WaitingTime = r.TurnaroundTime - r.BurstTime
	r.ResponseTime = r.StartTime - r.ArrivalTime
}

// RunSummary carries the run-wide aggregates of one simulation.
type RunSummary struct {
	Policy string `json:"policy"`
	// IntervalSize is floor(sqrt(total burst time)), the window used for
	// AverageProcessesServed.
	IntervalSize int `json:"interval_size"`
	// AverageProcessesServed is the mean, over completed intervals, of
	// distinct processes switched away from divided by IntervalSize.
	AverageProcessesServed float64 `json:"average_processes_served"`
	Intervals              int     `json:"intervals"`
	TotalSwitches          int     `json:"total_switches"`
	BusyTime               int     `json:"busy_time"`
	Makespan               int     `json:"makespan"`
}

// Schedule is the complete outcome of one policy run.
type Schedule struct {
	Summary RunSummary      `json:"summary"`
	Results []ProcessResult `json:"results"` // ascending StartTime
	Events  []Event         `json:"events,omitempty"`
}

// Result looks up the result for a process ID.
func (s *Schedule) Result(id string) (ProcessResult, bool) {
	for _, r := range s.Results {
		if r.ProcessID == id {
			return r, true
		}
	}
	return ProcessResult{}, false
}

func sortByStart(results []ProcessResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartTime < results[j].StartTime
	})
}
