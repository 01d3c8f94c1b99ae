package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFCFS_TextbookScenario(t *testing.T) {
	// GIVEN P1(0,6), P2(2,8), P3(4,7)
	ps := []Process{proc("P1", 0, 6), proc("P2", 2, 8), proc("P3", 4, 7)}

	// WHEN scheduled first-come-first-served
	s, err := RunFCFS(ps)
	require.NoError(t, err)

	// THEN starts, finishes and waits match the hand-worked schedule
	tests := []struct {
		id                   string
		start, finish, wait  int
		turnaround, switches int
	}{
		{"P1", 0, 6, 0, 6, 1},
		{"P2", 6, 14, 4, 12, 1},
		{"P3", 14, 21, 10, 17, 0},
	}
	require.Len(t, s.Results, 3)
	for i, tt := range tests {
		r := s.Results[i]
		assert.Equal(t, tt.id, r.ProcessID)
		assert.Equal(t, tt.start, r.StartTime, "%s start", tt.id)
		assert.Equal(t, tt.finish, r.FinishTime, "%s finish", tt.id)
		assert.Equal(t, tt.wait, r.WaitingTime, "%s waiting", tt.id)
		assert.Equal(t, tt.turnaround, r.TurnaroundTime, "%s turnaround", tt.id)
		assert.Equal(t, tt.switches, r.Switches, "%s switches", tt.id)
	}

	// interval size floor(sqrt(21)) = 4; switches at t=6 and t=14 each close
	// one interval with a single distinct process
	assert.Equal(t, 4, s.Summary.IntervalSize)
	assert.Equal(t, 2, s.Summary.Intervals)
	assert.InDelta(t, 0.25, s.Summary.AverageProcessesServed, 1e-9)
	assert.Equal(t, 2, s.Summary.TotalSwitches)
	assert.Equal(t, 21, s.Summary.BusyTime)
	assert.Equal(t, 21, s.Summary.Makespan)
	assert.Equal(t, PolicyFCFS, s.Summary.Policy)
}

func TestFCFS_EqualArrivalsKeepInputOrder(t *testing.T) {
	ps := []Process{proc("C", 0, 2), proc("A", 0, 1), proc("B", 0, 3)}

	s, err := RunFCFS(ps)
	require.NoError(t, err)

	ids := []string{s.Results[0].ProcessID, s.Results[1].ProcessID, s.Results[2].ProcessID}
	assert.Equal(t, []string{"C", "A", "B"}, ids)
}

func TestFCFS_UnsortedInputRunsInArrivalOrder(t *testing.T) {
	ps := []Process{proc("late", 9, 1), proc("early", 1, 2)}

	s, err := RunFCFS(ps)
	require.NoError(t, err)

	early := mustResult(t, s, "early")
	late := mustResult(t, s, "late")
	assert.Equal(t, 1, early.StartTime)
	assert.Equal(t, 3, early.FinishTime)
	assert.Equal(t, 9, late.StartTime, "CPU idles until the late arrival")
	assert.Equal(t, 10, late.FinishTime)
	assert.Equal(t, 3, s.Summary.BusyTime)
	assert.Equal(t, 10, s.Summary.Makespan)

	var idle []Event
	for _, ev := range s.Events {
		if ev.Kind == EventIdle {
			idle = append(idle, ev)
		}
	}
	require.Len(t, idle, 2)
	assert.Equal(t, Event{Time: 0, Kind: EventIdle, Ran: 1}, idle[0])
	assert.Equal(t, Event{Time: 3, Kind: EventIdle, Ran: 6}, idle[1])
}
