package sched

import "github.com/emirpasic/gods/queues/arrayqueue"

// DefaultQuantum is the round-robin time quantum used when none is configured.
const DefaultQuantum = 4

type roundRobin struct {
	quantum int
}

// NewRoundRobin returns the preemptive round-robin policy with a fixed
// quantum. A non-positive quantum makes Schedule fail with ErrInvalidInput.
func NewRoundRobin(quantum int) Policy {
	return roundRobin{quantum: quantum}
}

// RunRoundRobin schedules processes round-robin with the given quantum.
func RunRoundRobin(processes []Process, quantum int) (*Schedule, error) {
	return NewRoundRobin(quantum).Schedule(processes)
}

func (roundRobin) Name() string { return PolicyRoundRobin }

func (rr roundRobin) Schedule(processes []Process) (*Schedule, error) {
	if err := validateQuantum(PolicyRoundRobin, rr.quantum); err != nil {
		return nil, err
	}
	if err := Validate(processes); err != nil {
		return nil, err
	}
	sim := newSimulation(PolicyRoundRobin, processes)
	ready := arrayqueue.New()
	enqueue := func(p Process) { ready.Enqueue(p) }

	for sim.arrivalsPending() || !ready.Empty() {
		sim.admit(enqueue)
		v, ok := ready.Dequeue()
		if !ok {
			sim.idleUntilNextArrival()
			continue
		}
		p := v.(Process)
		slot := sim.dispatch(p.ID)
		ran := sim.execute(slot, rr.quantum)

		// arrivals during the slice queue ahead of the preempted process
		sim.admit(enqueue)
		sim.settle(slot, Event{Ran: ran})
		if sim.left(slot) > 0 {
			ready.Enqueue(p)
		}
	}
	return sim.schedule(), nil
}
