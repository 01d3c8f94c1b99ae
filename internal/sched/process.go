package sched

// Weight bounds for the fair scheduler's priority mapping.
const (
	MinWeightPriority = 1
	MaxWeightPriority = 20
)

// Process describes one simulated process. Values are copied into each
// simulation; policies never modify the caller's slice.
type Process struct {
	ID          string `json:"id" yaml:"id"`
	ArrivalTime int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int    `json:"burst_time" yaml:"burst_time"`
	Priority    int    `json:"priority" yaml:"priority"`
}

// Weight is the CFS scheduling weight, 21 - clamp(priority, 1, 20).
// A smaller priority number yields a larger share of the CPU.
func (p Process) Weight() float64 {
	prio := p.Priority
	// clamp priority within the legal region.
	if prio < MinWeightPriority {
		prio = MinWeightPriority
	} else if prio > MaxWeightPriority {
		prio = MaxWeightPriority
	}
	return float64(MaxWeightPriority + 1 - prio)
}

func totalBurst(processes []Process) int {
	sum := 0
	for _, p := range processes {
		sum += p.BurstTime
	}
	return sum
}
