package sched

import (
	"math"

	"github.com/emirpasic/gods/sets/hashset"
)

// switchTracker attributes context switches and folds the distinct processes
// served per interval into a running mean.
type switchTracker struct {
	intervalSize int
	prev         string
	mark         int // time of the last recorded switch
	elapsed      int // time accumulated toward the current interval
	seen         *hashset.Set
	intervals    int
	average      float64
}

func newSwitchTracker(totalBurst int) *switchTracker {
	size := int(math.Sqrt(float64(totalBurst)))
	if size < 1 {
		size = 1
	}
	return &switchTracker{
		intervalSize: size,
		seen:         hashset.New(),
	}
}

// dispatch records that id starts running at now. It returns the process
// switched away from, if any.
func (s *switchTracker) dispatch(id string, now int) (prev string, switched bool) {
	if s.prev == "" {
		s.prev, s.mark = id, now
		return "", false
	}
	if s.prev == id {
		return "", false
	}

	prev = s.prev
	s.seen.Add(prev)
	s.elapsed += now - s.mark
	if s.elapsed >= s.intervalSize {
		s.intervals++
		sample := float64(s.seen.Size()) / float64(s.intervalSize)
		s.average = (s.average*float64(s.intervals-1) + sample) / float64(s.intervals)
		s.seen.Clear()
		s.elapsed -= s.intervalSize
	}
	s.prev, s.mark = id, now
	return prev, true
}
