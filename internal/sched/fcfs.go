package sched

import "github.com/emirpasic/gods/queues/arrayqueue"

type fcfs struct{}

// NewFCFS returns the non-preemptive first-come-first-served policy.
// Processes run to completion in arrival order; equal arrivals keep their
// input order.
func NewFCFS() Policy { return fcfs{} }

// RunFCFS schedules processes first-come-first-served.
func RunFCFS(processes []Process) (*Schedule, error) {
	return NewFCFS().Schedule(processes)
}

func (fcfs) Name() string { return PolicyFCFS }

func (fcfs) Schedule(processes []Process) (*Schedule, error) {
	if err := Validate(processes); err != nil {
		return nil, err
	}
	sim := newSimulation(PolicyFCFS, processes)
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
		ran := sim.execute(slot, p.BurstTime)
		sim.settle(slot, Event{Ran: ran})
	}
	return sim.schedule(), nil
}
