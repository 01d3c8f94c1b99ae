package sched

import "sync"

// Outcome is the result of one policy in a comparison run.
type Outcome struct {
	Policy   string
	Schedule *Schedule
	Err      error
}

// Compare runs every policy over the same workload. Each policy gets its own
// copy of the processes and runs in its own goroutine; outcomes come back in
// Names() order.
func Compare(processes []Process, cfg Config) ([]Outcome, error) {
	if err := Validate(processes); err != nil {
		return nil, err
	}

	names := Names()
	outcomes := make([]Outcome, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			outcomes[i].Policy = name
			policy, err := New(name, cfg)
			if err != nil {
				outcomes[i].Err = err
				return
			}
			input := append([]Process(nil), processes...)
			outcomes[i].Schedule, outcomes[i].Err = policy.Schedule(input)
		}(i, name)
	}
	wg.Wait()
	return outcomes, nil
}
