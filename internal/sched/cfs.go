// internal/sched/cfs.go

package sched

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"schedsim/internal/runq"
)

// CFS defaults.
const (
	DefaultNice0Load     = 1024.0
	DefaultTargetLatency = 20
	DefaultFallbackSlice = 4
)

// CFSConfig parameterizes the completely-fair policy.
type CFSConfig struct {
	TargetLatency int     `yaml:"target_latency"` // nominal scheduling period
	Nice0Load     float64 `yaml:"nice0_load"`     // vruntime scale
	FallbackSlice int     `yaml:"fallback_slice"` // slice used when the total weight is not positive

	// ArrivalFilteredWeight restricts the total weight used for slice sizing
	// to processes that have already arrived. When false, every process with
	// work left counts, including future arrivals.
	ArrivalFilteredWeight bool `yaml:"arrival_filtered_weight"`
}

// DefaultCFSConfig returns the classic parameters: latency 20, load 1024.
func DefaultCFSConfig() CFSConfig {
	return CFSConfig{
		TargetLatency: DefaultTargetLatency,
		Nice0Load:     DefaultNice0Load,
		FallbackSlice: DefaultFallbackSlice,
	}
}

type cfs struct {
	cfg CFSConfig
}

// NewCFS returns the weighted-fair virtual runtime policy. Runnable processes
// sit in a red-black tree keyed by (vruntime, id); the minimum runs for a
// slice proportional to its weight and accrues vruntime inversely to it.
func NewCFS(cfg CFSConfig) Policy {
	return cfs{cfg: cfg}
}

// RunCFS schedules processes with the default CFS parameters.
func RunCFS(processes []Process) (*Schedule, error) {
	return NewCFS(DefaultCFSConfig()).Schedule(processes)
}

func (cfs) Name() string { return PolicyCFS }

func (c cfs) validate() error {
	switch {
	case c.cfg.TargetLatency <= 0:
		return errors.Wrapf(ErrInvalidInput, "cfs: target latency %d must be positive", c.cfg.TargetLatency)
	case c.cfg.Nice0Load <= 0:
		return errors.Wrapf(ErrInvalidInput, "cfs: nice0 load %v must be positive", c.cfg.Nice0Load)
	case c.cfg.FallbackSlice <= 0:
		return errors.Wrapf(ErrInvalidInput, "cfs: fallback slice %d must be positive", c.cfg.FallbackSlice)
	}
	return nil
}

func (c cfs) Schedule(processes []Process) (*Schedule, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := Validate(processes); err != nil {
		return nil, err
	}

	sim := newSimulation(PolicyCFS, processes)
	tree := runq.New[Process]()
	enqueue := func(p Process) {
		tree.Insert(runq.Key{Vruntime: 0, ID: p.ID}, p)
	}

	for {
		sim.admit(enqueue)
		if tree.IsEmpty() {
			if !sim.idleUntilNextArrival() {
				break
			}
			continue
		}

		totalWeight := c.totalWeight(sim, processes)
		key, p, _ := tree.PopMin()
		slot := sim.dispatch(p.ID)

		weight := p.Weight()
		ran := sim.execute(slot, c.timeslice(weight, totalWeight))
		vruntime := key.Vruntime + float64(ran)*(c.cfg.Nice0Load/weight)
		logrus.Debugf("[%s t=%05d] %s ran %d, vruntime %.2f -> %.2f",
			PolicyCFS, sim.clock.Now(), p.ID, ran, key.Vruntime, vruntime)

		sim.admit(enqueue)
		sim.settle(slot, Event{Ran: ran, Vruntime: vruntime})
		if sim.left(slot) > 0 {
			tree.Insert(runq.Key{Vruntime: vruntime, ID: p.ID}, p)
		}
	}
	return sim.schedule(), nil
}

// totalWeight sums the weights of processes that still have work left.
func (c cfs) totalWeight(sim *simulation, processes []Process) float64 {
	now := sim.clock.Now()
	total := 0.0
	for i, p := range processes {
		if sim.remaining[i] == 0 {
			continue
		}
		if c.cfg.ArrivalFilteredWeight && p.ArrivalTime > now {
			continue
		}
		total += p.Weight()
	}
	return total
}

func (c cfs) timeslice(weight, totalWeight float64) int {
	if totalWeight <= 0 {
		return c.cfg.FallbackSlice
	}
	slice := int(math.Floor(float64(c.cfg.TargetLatency) * (weight / totalWeight)))
	return max(1, slice)
}
