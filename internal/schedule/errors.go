package schedule

import "fmt"

// InvalidTimeError reports a weekday, hour or minute outside its domain in
// one configured entry.
type InvalidTimeError struct {
	Entry int    // index into the configured block-schedules
	Field string // "weekday", "start-hour", "start-minute", "end-hour", "end-minute"
	Value int
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("block-schedules[%d]: %s %d out of range", e.Entry, e.Field, e.Value)
}

// DegenerateIntervalError reports a window whose start equals its end.
// Such a window is ambiguous (zero minutes or the whole week) and rejected.
type DegenerateIntervalError struct {
	Entry  int
	Hour   int
	Minute int
}

func (e *DegenerateIntervalError) Error() string {
	return fmt.Sprintf(
		"block-schedules[%d]: start and end are both %02d:%02d; a window must not be empty",
		e.Entry, e.Hour, e.Minute,
	)
}

// OverlapError reports two windows that share at least one minute.
// EntryA/EntryB index the original configured entries (which may be the same
// entry when a day-less schedule collides with itself across a wraparound).
type OverlapError struct {
	EntryA, EntryB int
	A, B           Interval
}

func (e *OverlapError) Error() string {
	ad, ah, am := e.A.StartClock()
	bd, bh, bm := e.B.StartClock()
	return fmt.Sprintf(
		"block-schedules[%d] (%s %02d:%02d) overlaps block-schedules[%d] (%s %02d:%02d)",
		e.EntryA, ad, ah, am, e.EntryB, bd, bh, bm,
	)
}

// InternalFaultError indicates the expander was handed intervals that violate
// a validator-established invariant. It is a defect in this program, never a
// configuration problem.
type InternalFaultError struct {
	Reason string
}

func (e *InternalFaultError) Error() string {
	return "schedule compiler internal fault: " + e.Reason
}
