package job

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"schedsim/internal/sched"
)

// Workload presets.
const (
	PresetDefault      = "default"       // bursts 1-10, priorities 1..n, all at t=0
	PresetRandom       = "random"        // bursts 1-20, arrivals 0-9
	PresetShort        = "short"         // bursts 1-5, all at t=0
	PresetMixed        = "mixed"         // bursts 1-20, arrivals 0-4
	PresetHeavy        = "heavy"         // bursts 10-30, arrivals 0-9
	PresetPriorityDemo = "priority-demo" // bursts 5-14, priorities n..1, all at t=0
)

var presets = []string{PresetDefault, PresetRandom, PresetShort, PresetMixed, PresetHeavy, PresetPriorityDemo}

// ErrUnknownPreset is returned by Generate for an unrecognized preset.
var ErrUnknownPreset = errors.New("unknown preset")

// Presets lists the preset names Generate accepts.
func Presets() []string {
	return append([]string(nil), presets...)
}

// Generate builds n processes P1..Pn shaped by preset. The same seed always
// yields the same workload.
func Generate(preset string, n int, seed int64) ([]sched.Process, error) {
	if n < 1 || n > MaxProcesses {
		return nil, errors.Wrapf(sched.ErrInvalidInput, "process count %d outside 1..%d", n, MaxProcesses)
	}
	rng := rand.New(rand.NewSource(seed))
	// between returns a value in [lo, hi).
	between := func(lo, hi int) int { return lo + rng.Intn(hi-lo) }

	ps := make([]sched.Process, n)
	for i := range ps {
		p := sched.Process{ID: fmt.Sprintf("P%d", i+1)}
		switch preset {
		case PresetDefault:
			p.BurstTime, p.Priority = between(1, 11), i+1
		case PresetRandom:
			p.BurstTime, p.Priority, p.ArrivalTime = between(1, 21), between(1, n+1), between(0, 10)
		case PresetShort:
			p.BurstTime, p.Priority = between(1, 6), between(1, 5)
		case PresetMixed:
			p.BurstTime, p.Priority, p.ArrivalTime = between(1, 21), between(1, 10), between(0, 5)
		case PresetHeavy:
			p.BurstTime, p.Priority, p.ArrivalTime = between(10, 31), between(1, 5), between(0, 10)
		case PresetPriorityDemo:
			p.BurstTime, p.Priority = between(5, 15), n-i
		default:
			return nil, errors.Wrapf(ErrUnknownPreset, "%q", preset)
		}
		ps[i] = p
	}
	return ps, nil
}
