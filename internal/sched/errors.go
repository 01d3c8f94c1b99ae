package sched

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned for malformed workloads or policy parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownPolicy is returned by New for an unrecognized policy name.
	ErrUnknownPolicy = errors.New("unknown policy")
)

// Validate rejects workloads the policies cannot simulate: an empty list,
// blank or duplicate IDs, negative arrivals and non-positive bursts.
func Validate(processes []Process) error {
	if len(processes) == 0 {
		return errors.Wrap(ErrInvalidInput, "no processes")
	}
	seen := make(map[string]struct{}, len(processes))
	for i, p := range processes {
		if p.ID == "" {
			return errors.Wrapf(ErrInvalidInput, "process #%d has an empty id", i+1)
		}
		if _, dup := seen[p.ID]; dup {
			return errors.Wrapf(ErrInvalidInput, "duplicate process id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.ArrivalTime < 0 {
			return errors.Wrapf(ErrInvalidInput, "process %q: arrival time %d is negative", p.ID, p.ArrivalTime)
		}
		if p.BurstTime <= 0 {
			return errors.Wrapf(ErrInvalidInput, "process %q: burst time %d must be positive", p.ID, p.BurstTime)
		}
	}
	return nil
}

func validateQuantum(name string, q int) error {
	if q <= 0 {
		return errors.Wrapf(ErrInvalidInput, "%s: quantum %d must be positive", name, q)
	}
	return nil
}
