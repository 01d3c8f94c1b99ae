package report

import (
	"fmt"
	"io"
	"strings"

	"schedsim/internal/sched"
)

// WriteTrace prints the dispatch trace as aligned log lines, keeping a
// running total of executed time per process.
func WriteTrace(w io.Writer, events []sched.Event) {
	// an auxiliary function to center the event kind in the output
	center := func(str string, width int) string {
		spaces := (width - len(str)) / 2
		return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
	}

	ran := make(map[string]int)
	for _, ev := range events {
		if ev.Kind == sched.EventIdle {
			_, _ = fmt.Fprintf(w, "Time: %07d [%s] => idle for %04d\n", ev.Time, center(ev.Kind.String(), 12), ev.Ran)
			continue
		}
		ran[ev.ProcessID] += ev.Ran
		_, _ = fmt.Fprintf(w, "Time: %07d [%s] => Process: %-6s Total ran: %04d, level=%d, vruntime=%09.4f\n",
			ev.Time,
			center(ev.Kind.String(), 12),
			ev.ProcessID,
			ran[ev.ProcessID],
			ev.Level,
			ev.Vruntime,
		)
	}
}
