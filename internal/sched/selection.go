package sched

// selective is a non-preemptive policy that, whenever the CPU is free, picks
// the best process among those that have already arrived.
type selective struct {
	name string
	// better reports whether a should be chosen over b. Candidates are
	// scanned in arrival order and the first best one wins.
	better func(a, b Process) bool
}

// NewSJF returns the non-preemptive shortest-job-first policy. Ties on burst
// time go to the earliest arrival.
func NewSJF() Policy {
	return selective{
		name: PolicySJF,
		better: func(a, b Process) bool {
			if a.BurstTime != b.BurstTime {
				return a.BurstTime < b.BurstTime
			}
			return a.ArrivalTime < b.ArrivalTime
		},
	}
}

// NewPriority returns the non-preemptive priority policy. A higher priority
// value wins; ties go to the earliest arrival.
func NewPriority() Policy {
	return selective{
		name: PolicyPriority,
		better: func(a, b Process) bool {
			if a.Priority != b.Priority {
				return a.Priority > b.Priority
			}
			return a.ArrivalTime < b.ArrivalTime
		},
	}
}

// RunSJF schedules processes shortest-job-first.
func RunSJF(processes []Process) (*Schedule, error) {
	return NewSJF().Schedule(processes)
}

// RunPriority schedules processes by static priority.
func RunPriority(processes []Process) (*Schedule, error) {
	return NewPriority().Schedule(processes)
}

func (s selective) Name() string { return s.name }

func (s selective) Schedule(processes []Process) (*Schedule, error) {
	if err := Validate(processes); err != nil {
		return nil, err
	}
	sim := newSimulation(s.name, processes)
	var available []Process
	enqueue := func(p Process) { available = append(available, p) }

	for sim.arrivalsPending() || len(available) > 0 {
		sim.admit(enqueue)
		if len(available) == 0 {
			sim.idleUntilNextArrival()
			continue
		}

		best := 0
		for i := 1; i < len(available); i++ {
			if s.better(available[i], available[best]) {
				best = i
			}
		}
		p := available[best]
		available = append(available[:best], available[best+1:]...)

		slot := sim.dispatch(p.ID)
		ran := sim.execute(slot, p.BurstTime)
		sim.settle(slot, Event{Ran: ran})
	}
	return sim.schedule(), nil
}
