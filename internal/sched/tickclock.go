// internal/sched/tickclock.go

package sched

// tickClock is the simulated CPU clock of one run. Time only moves forward,
// either by executing a process or by idling until the next arrival.
type tickClock struct {
	now  int
	busy int
}

// Now returns the current simulated time.
func (c *tickClock) Now() int { return c.now }

// Busy returns the total time spent executing processes.
func (c *tickClock) Busy() int { return c.busy }

// advance runs the CPU for d time units.
func (c *tickClock) advance(d int) {
	c.now += d
	c.busy += d
}

// idleUntil moves the clock to t without accruing busy time and returns the
// length of the idle gap.
func (c *tickClock) idleUntil(t int) int {
	if t <= c.now {
		return 0
	}
	gap := t - c.now
	c.now = t
	return gap
}
