package sched

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// proc builds a process; priority defaults to 0.
func proc(id string, arrival, burst int, priority ...int) Process {
	p := Process{ID: id, ArrivalTime: arrival, BurstTime: burst}
	if len(priority) > 0 {
		p.Priority = priority[0]
	}
	return p
}

func randomWorkload(rng *rand.Rand, n int) []Process {
	ps := make([]Process, n)
	for i := range ps {
		ps[i] = Process{
			ID:          fmt.Sprintf("P%d", i+1),
			ArrivalTime: rng.Intn(30),
			BurstTime:   1 + rng.Intn(25),
			Priority:    rng.Intn(25) - 2,
		}
	}
	return ps
}

func mustResult(t *testing.T, s *Schedule, id string) ProcessResult {
	t.Helper()
	r, ok := s.Result(id)
	require.True(t, ok, "no result for %s", id)
	return r
}

// segment is one execution interval reconstructed from the trace.
type segment struct {
	id       string
	start    int
	ran      int
	level    int
	vruntime float64
	finished bool
}

func segments(s *Schedule) []segment {
	var out []segment
	start := map[string]int{}
	for _, ev := range s.Events {
		switch ev.Kind {
		case EventDispatch:
			start[ev.ProcessID] = ev.Time
		case EventPreempt, EventFinish:
			out = append(out, segment{
				id:       ev.ProcessID,
				start:    start[ev.ProcessID],
				ran:      ev.Ran,
				level:    ev.Level,
				vruntime: ev.Vruntime,
				finished: ev.Kind == EventFinish,
			})
		}
	}
	return out
}

func startTimes(s *Schedule) map[string]int {
	m := map[string]int{}
	for _, r := range s.Results {
		m[r.ProcessID] = r.StartTime
	}
	return m
}

func finishTimes(s *Schedule) map[string]int {
	m := map[string]int{}
	for _, r := range s.Results {
		m[r.ProcessID] = r.FinishTime
	}
	return m
}
