package schedule

import (
	"fmt"
	"sort"
)

// Action says what the blocking tool should do at a trigger instant.
type Action int

const (
	// ActionStop marks the end of a window. The tool self-terminates on its
	// own timer, so Stop instants are informational, but they give tooling a
	// deterministic "blocking just ended" signal and sort before Start at a
	// shared instant so back-to-back windows stay continuous.
	ActionStop Action = iota
	// ActionStart marks the beginning of a window; the tool is invoked with
	// the window's duration.
	ActionStart
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Trigger is one calendar instant handed to the OS scheduler: fire at the
// exact (weekday, hour, minute) match every week.
type Trigger struct {
	Weekday Weekday
	Hour    int
	Minute  int
	Action  Action

	// DurationMinutes is the logical window length, set on Start triggers
	// only. A wraparound window reports its full length, not the lengths of
	// its split halves.
	DurationMinutes int

	// Entry indexes the originating configured schedule.
	Entry int
}

// Offset returns the trigger's position on the week timeline.
func (t Trigger) Offset() int {
	return int(t.Weekday)*MinutesPerDay + t.Hour*60 + t.Minute
}

// Expand converts validated intervals into the full trigger set, ordered by
// week offset with Stop before Start at equal instants.
//
// Expand has no error conditions of its own over validated input. The
// returned error is always an *InternalFaultError and means the input did
// not actually come out of Normalize intact.
func Expand(intervals []Interval) ([]Trigger, error) {
	triggers := make([]Trigger, 0, 2*len(intervals))
	for _, iv := range intervals {
		if iv.Start < 0 || iv.Start >= MinutesPerWeek || iv.End < 0 || iv.End >= MinutesPerWeek {
			return nil, &InternalFaultError{
				Reason: fmt.Sprintf("interval [%d,%d) outside week timeline", iv.Start, iv.End),
			}
		}
		if iv.Start == iv.End {
			return nil, &InternalFaultError{
				Reason: fmt.Sprintf("degenerate interval at offset %d escaped validation", iv.Start),
			}
		}

		sd, sh, sm := iv.StartClock()
		triggers = append(triggers, Trigger{
			Weekday: sd, Hour: sh, Minute: sm,
			Action:          ActionStart,
			DurationMinutes: iv.Duration(),
			Entry:           iv.Entry,
		})
		ed, eh, em := iv.EndClock()
		triggers = append(triggers, Trigger{
			Weekday: ed, Hour: eh, Minute: em,
			Action: ActionStop,
			Entry:  iv.Entry,
		})
	}

	// Both records are kept when a Stop and a Start collapse onto the same
	// instant (adjacent half-open windows); the Stop fires first.
	sort.SliceStable(triggers, func(a, b int) bool {
		if triggers[a].Offset() != triggers[b].Offset() {
			return triggers[a].Offset() < triggers[b].Offset()
		}
		return triggers[a].Action < triggers[b].Action
	})
	return triggers, nil
}
