package sched

import (
	"sort"

	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/sirupsen/logrus"
)

// simulation holds the bookkeeping shared by every policy for one run:
// the clock, the not-yet-arrived list, per-process results and remaining
// work, switch accounting and the dispatch trace.
type simulation struct {
	policy    string
	clock     tickClock
	pending   *arrayqueue.Queue // Process values ordered by arrival
	results   []ProcessResult
	remaining []int
	slots     map[string]int
	switches  *switchTracker
	events    []Event
}

func newSimulation(policy string, processes []Process) *simulation {
	s := &simulation{
		policy:    policy,
		pending:   arrayqueue.New(),
		results:   make([]ProcessResult, len(processes)),
		remaining: make([]int, len(processes)),
		slots:     make(map[string]int, len(processes)),
		switches:  newSwitchTracker(totalBurst(processes)),
	}
	for i, p := range processes {
		s.results[i] = newResult(p)
		s.remaining[i] = p.BurstTime
		s.slots[p.ID] = i
	}

	byArrival := append([]Process(nil), processes...)
	sort.SliceStable(byArrival, func(i, j int) bool {
		return byArrival[i].ArrivalTime < byArrival[j].ArrivalTime
	})
	for _, p := range byArrival {
		s.pending.Enqueue(p)
	}
	return s
}

func (s *simulation) record(ev Event) {
	s.events = append(s.events, ev)
}

// admit hands every process that has arrived by now to enqueue, in arrival
// order.
func (s *simulation) admit(enqueue func(Process)) {
	for {
		v, ok := s.pending.Peek()
		if !ok {
			return
		}
		p := v.(Process)
		if p.ArrivalTime > s.clock.Now() {
			return
		}
		s.pending.Dequeue()
		s.record(Event{Time: p.ArrivalTime, Kind: EventArrive, ProcessID: p.ID})
		enqueue(p)
	}
}

// arrivalsPending reports whether some process has not arrived yet.
func (s *simulation) arrivalsPending() bool {
	return !s.pending.Empty()
}

// idleUntilNextArrival jumps the clock to the next arrival. It returns false
// when no arrival is left.
func (s *simulation) idleUntilNextArrival() bool {
	v, ok := s.pending.Peek()
	if !ok {
		return false
	}
	from := s.clock.Now()
	if gap := s.clock.idleUntil(v.(Process).ArrivalTime); gap > 0 {
		logrus.Debugf("[%s t=%05d] cpu idle for %d", s.policy, from, gap)
		s.record(Event{Time: from, Kind: EventIdle, Ran: gap})
	}
	return true
}

// dispatch puts the process on the CPU at the current time and returns its
// slot.
func (s *simulation) dispatch(id string) int {
	now := s.clock.Now()
	if prev, switched := s.switches.dispatch(id, now); switched {
		s.results[s.slots[prev]].Switches++
	}
	slot := s.slots[id]
	if s.results[slot].StartTime == notStarted {
		s.results[slot].StartTime = now
	}
	logrus.Debugf("[%s t=%05d] dispatch %s (remaining %d)", s.policy, now, id, s.remaining[slot])
	s.record(Event{Time: now, Kind: EventDispatch, ProcessID: id})
	return slot
}

// execute runs the slot for at most limit time units and returns the time
// actually used.
func (s *simulation) execute(slot, limit int) int {
	ran := min(limit, s.remaining[slot])
	s.clock.advance(ran)
	s.remaining[slot] -= ran
	return ran
}

func (s *simulation) left(slot int) int {
	return s.remaining[slot]
}

// settle closes the segment that just ran: the process is finalized when no
// work remains, otherwise it is recorded as preempted. ev carries the
// segment details.
func (s *simulation) settle(slot int, ev Event) {
	now := s.clock.Now()
	ev.Time = now
	ev.ProcessID = s.results[slot].ProcessID
	ev.Kind = EventPreempt
	if s.remaining[slot] == 0 {
		s.results[slot].finalize(now)
		ev.Kind = EventFinish
		logrus.Debugf("[%s t=%05d] finish %s", s.policy, now, ev.ProcessID)
	}
	s.record(ev)
}

func (s *simulation) schedule() *Schedule {
	results := append([]ProcessResult(nil), s.results...)
	sortByStart(results)

	total := 0
	for _, r := range results {
		total += r.Switches
	}
	logrus.Infof("%s: %d processes finished at t=%d, %d context switches",
		s.policy, len(results), s.clock.Now(), total)

	return &Schedule{
		Summary: RunSummary{
			Policy:                 s.policy,
			IntervalSize:           s.switches.intervalSize,
			AverageProcessesServed: s.switches.average,
			Intervals:              s.switches.intervals,
			TotalSwitches:          total,
			BusyTime:               s.clock.Busy(),
			Makespan:               s.clock.Now(),
		},
		Results: results,
		Events:  s.events,
	}
}
