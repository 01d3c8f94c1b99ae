// internal/sched/schedulerEvent.go

package sched

import "github.com/pkg/errors"

// EventKind represents the type of a dispatch trace event
type EventKind int

const (
	EventIdle EventKind = iota
	EventArrive
	EventDispatch
	EventPreempt
	EventFinish
)

// Event is one entry of a simulation's dispatch trace.
type Event struct {
	Time      int       `json:"time"`
	Kind      EventKind `json:"kind"`
	ProcessID string    `json:"process_id,omitempty"`
	Ran       int       `json:"ran,omitempty"`      // length of the segment that just ended, or of an idle gap
	Level     int       `json:"level,omitempty"`    // MLFQ queue level of the segment
	Vruntime  float64   `json:"vruntime,omitempty"` // CFS vruntime after the segment
}

func (k EventKind) String() string {
	switch k {
	case EventIdle:
		return "Idle"
	case EventArrive:
		return "Arrive"
	case EventDispatch:
		return "Dispatch"
	case EventPreempt:
		return "Preempt"
	case EventFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *EventKind) UnmarshalText(text []byte) error {
	for kind := EventIdle; kind <= EventFinish; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return errors.Errorf("unknown event kind %q", text)
}
