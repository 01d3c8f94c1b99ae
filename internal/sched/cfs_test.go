package sched

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_WeightClampsPriority(t *testing.T) {
	tests := []struct {
		priority int
		want     float64
	}{
		{-4, 20},
		{0, 20},
		{1, 20},
		{5, 16},
		{20, 1},
		{99, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Process{Priority: tt.priority}.Weight(), "priority %d", tt.priority)
	}
}

func TestCFS_EqualWeightsShareFairly(t *testing.T) {
	// GIVEN two equal-priority processes arriving together
	ps := []Process{proc("A", 0, 10, 1), proc("B", 0, 10, 1)}

	// WHEN scheduled by CFS
	s, err := RunCFS(ps)
	require.NoError(t, err)

	// THEN slice = floor(20 * 20/40) = 10 and the ID breaks the vruntime tie
	slice := 10
	perSlice := float64(slice) * DefaultNice0Load / 20
	fin := finishTimes(s)
	assert.Equal(t, map[string]int{"A": 10, "B": 20}, fin)
	assert.LessOrEqual(t, fin["B"]-fin["A"], slice)

	// and the vruntimes never drift apart by more than one slice's worth
	v := map[string]float64{"A": 0, "B": 0}
	for _, seg := range segments(s) {
		v[seg.id] = seg.vruntime
		assert.LessOrEqual(t, math.Abs(v["A"]-v["B"]), perSlice+1e-9)
	}
}

func TestCFS_ThreeEqualProcesses(t *testing.T) {
	ps := []Process{proc("A", 0, 10, 1), proc("B", 0, 10, 1), proc("C", 0, 10, 1)}

	s, err := RunCFS(ps)
	require.NoError(t, err)

	// slice floor(20/3) = 6, so each process needs a second, shorter segment
	want := []segment{
		{id: "A", start: 0, ran: 6, vruntime: 307.2},
		{id: "B", start: 6, ran: 6, vruntime: 307.2},
		{id: "C", start: 12, ran: 6, vruntime: 307.2},
		{id: "A", start: 18, ran: 4, vruntime: 512, finished: true},
		{id: "B", start: 22, ran: 4, vruntime: 512, finished: true},
		{id: "C", start: 26, ran: 4, vruntime: 512, finished: true},
	}
	got := segments(s)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].id, got[i].id, "segment %d", i)
		assert.Equal(t, want[i].start, got[i].start, "segment %d", i)
		assert.Equal(t, want[i].ran, got[i].ran, "segment %d", i)
		assert.InDelta(t, want[i].vruntime, got[i].vruntime, 1e-9, "segment %d", i)
		assert.Equal(t, want[i].finished, got[i].finished, "segment %d", i)
	}
}

func TestCFS_HeavierProcessGetsLargerShare(t *testing.T) {
	// GIVEN A with weight 20 and B with weight 10
	ps := []Process{proc("A", 0, 30, 1), proc("B", 0, 30, 11)}

	s, err := RunCFS(ps)
	require.NoError(t, err)

	// THEN A's slices are twice as long and it finishes first
	segs := segments(s)
	require.NotEmpty(t, segs)
	assert.Equal(t, "A", segs[0].id)
	assert.Equal(t, 13, segs[0].ran)
	assert.InDelta(t, 13*DefaultNice0Load/20, segs[0].vruntime, 1e-9)
	assert.Equal(t, "B", segs[1].id)
	assert.Equal(t, 6, segs[1].ran)
	assert.Equal(t, map[string]int{"A": 48, "B": 60}, finishTimes(s))
}

func TestCFS_TotalWeightIncludesFutureArrivalsByDefault(t *testing.T) {
	// GIVEN A running alone while B has not arrived yet
	ps := []Process{proc("A", 0, 20, 1), proc("B", 100, 4, 1)}

	// WHEN the total weight counts B (default) vs only arrived processes
	unfiltered, err := RunCFS(ps)
	require.NoError(t, err)

	cfg := DefaultCFSConfig()
	cfg.ArrivalFilteredWeight = true
	filtered, err := NewCFS(cfg).Schedule(ps)
	require.NoError(t, err)

	// THEN the default halves A's slice, the filtered variant does not
	countA := func(s *Schedule) int {
		n := 0
		for _, seg := range segments(s) {
			if seg.id == "A" {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 2, countA(unfiltered))
	assert.Equal(t, 1, countA(filtered))
	for _, s := range []*Schedule{unfiltered, filtered} {
		assert.Equal(t, map[string]int{"A": 20, "B": 104}, finishTimes(s))
		assert.Equal(t, 1, mustResult(t, s, "A").Switches)
	}
}

func TestCFS_LateArrivalStartsAtZeroVruntime(t *testing.T) {
	// GIVEN A has accumulated vruntime before B arrives
	ps := []Process{proc("A", 0, 40, 1), proc("B", 5, 5, 1)}

	s, err := RunCFS(ps)
	require.NoError(t, err)

	// THEN B (vruntime 0) runs right after A's first slice
	segs := segments(s)
	require.GreaterOrEqual(t, len(segs), 2)
	assert.Equal(t, "A", segs[0].id)
	assert.Equal(t, "B", segs[1].id)
	assert.Equal(t, segs[0].ran, mustResult(t, s, "B").StartTime)
}

func TestCFS_ExecutedTimeAndVruntimeMonotonicity(t *testing.T) {
	ps := []Process{
		proc("A", 0, 17, 3), proc("B", 2, 9, 15), proc("C", 2, 30, 1),
		proc("D", 11, 4, 20), proc("E", 60, 12, 7),
	}

	s, err := RunCFS(ps)
	require.NoError(t, err)

	executed := 0
	last := map[string]float64{}
	for _, seg := range segments(s) {
		executed += seg.ran
		assert.GreaterOrEqual(t, seg.ran, 1)
		assert.GreaterOrEqual(t, seg.vruntime, last[seg.id], "vruntime of %s went backwards", seg.id)
		last[seg.id] = seg.vruntime
	}
	assert.Equal(t, totalBurst(ps), executed)
	assert.Equal(t, totalBurst(ps), s.Summary.BusyTime)
}

func TestCFS_RejectsBadConfig(t *testing.T) {
	ps := []Process{proc("P1", 0, 1)}
	bad := []CFSConfig{
		{TargetLatency: 0, Nice0Load: 1024, FallbackSlice: 4},
		{TargetLatency: 20, Nice0Load: 0, FallbackSlice: 4},
		{TargetLatency: 20, Nice0Load: 1024, FallbackSlice: 0},
	}
	for _, cfg := range bad {
		_, err := NewCFS(cfg).Schedule(ps)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", cfg)
	}
}

func TestCFS_Timeslice(t *testing.T) {
	c := cfs{cfg: DefaultCFSConfig()}
	assert.Equal(t, DefaultFallbackSlice, c.timeslice(20, 0))
	assert.Equal(t, 20, c.timeslice(20, 20))
	assert.Equal(t, 6, c.timeslice(20, 60))
	assert.Equal(t, 1, c.timeslice(1, 400), "slice never drops below one unit")
}
