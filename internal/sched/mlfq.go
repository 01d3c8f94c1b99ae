package sched

import (
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/pkg/errors"
)

// DefaultLevelQuantums are the MLFQ quantums, highest priority level first.
var DefaultLevelQuantums = []int{4, 16, 24}

type mlfq struct {
	quantums []int
}

// NewMLFQ returns the multilevel feedback queue policy. Every arrival enters
// level 0; a process that exhausts its level's quantum is demoted one level,
// staying on the last level once there. With no quantums the defaults are
// used.
func NewMLFQ(quantums ...int) Policy {
	if len(quantums) == 0 {
		quantums = DefaultLevelQuantums
	}
	return mlfq{quantums: append([]int(nil), quantums...)}
}

// RunMLFQ schedules processes with the default three-level feedback queue.
func RunMLFQ(processes []Process) (*Schedule, error) {
	return NewMLFQ().Schedule(processes)
}

func (mlfq) Name() string { return PolicyMLFQ }

func (m mlfq) Schedule(processes []Process) (*Schedule, error) {
	for level, q := range m.quantums {
		if err := validateQuantum(PolicyMLFQ, q); err != nil {
			return nil, errors.WithMessagef(err, "level %d", level)
		}
	}
	if err := Validate(processes); err != nil {
		return nil, err
	}

	sim := newSimulation(PolicyMLFQ, processes)
	levels := make([]*arrayqueue.Queue, len(m.quantums))
	for i := range levels {
		levels[i] = arrayqueue.New()
	}
	enqueue := func(p Process) { levels[0].Enqueue(p) }

	for {
		sim.admit(enqueue)
		level := -1
		for i, q := range levels {
			if !q.Empty() {
				level = i
				break
			}
		}
		if level < 0 {
			if !sim.idleUntilNextArrival() {
				break
			}
			continue
		}

		v, _ := levels[level].Dequeue()
		p := v.(Process)
		slot := sim.dispatch(p.ID)
		ran := sim.execute(slot, m.quantums[level])

		sim.admit(enqueue)
		sim.settle(slot, Event{Ran: ran, Level: level})
		if sim.left(slot) > 0 {
			next := min(level+1, len(levels)-1)
			levels[next].Enqueue(p)
		}
	}
	return sim.schedule(), nil
}
