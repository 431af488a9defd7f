package schedule

import "time"

// Compiled is the immutable result of one compiler run: the validated
// interval set together with its trigger expansion. It is handed as a value
// to the scheduler-registration layer; nothing mutates it after Compile.
type Compiled struct {
	intervals []Interval
	triggers  []Trigger
}

// Compile runs Normalize and Expand over the configured entries.
func Compile(entries []BlockSchedule) (*Compiled, error) {
	intervals, err := Normalize(entries)
	if err != nil {
		return nil, err
	}
	triggers, err := Expand(intervals)
	if err != nil {
		return nil, err
	}
	return &Compiled{intervals: intervals, triggers: triggers}, nil
}

// Intervals returns a copy of the validated interval set, sorted by start.
func (c *Compiled) Intervals() []Interval {
	return append([]Interval(nil), c.intervals...)
}

// Triggers returns a copy of the ordered trigger set.
func (c *Compiled) Triggers() []Trigger {
	return append([]Trigger(nil), c.triggers...)
}

// ActiveAt returns the interval covering t, if any. At most one interval can
// cover a given minute (the validator rejects overlap).
func (c *Compiled) ActiveAt(t time.Time) (Interval, bool) {
	m := WeekOffset(t)
	for _, iv := range c.intervals {
		if iv.Contains(m) {
			return iv, true
		}
	}
	return Interval{}, false
}

// RemainingMinutes returns how many minutes of blocking are left at t, or
// 0 when no window is active. The boundary minute counts: a window ending
// at 17:00 reports 1 remaining minute at 16:59 and 0 at 17:00.
func (c *Compiled) RemainingMinutes(t time.Time) int {
	iv, ok := c.ActiveAt(t)
	if !ok {
		return 0
	}
	return ((iv.End - WeekOffset(t)) % MinutesPerWeek + MinutesPerWeek) % MinutesPerWeek
}

// TotalMinutes returns the number of minutes per week covered by the
// compiled schedule.
func (c *Compiled) TotalMinutes() int {
	total := 0
	for _, iv := range c.intervals {
		total += iv.Duration()
	}
	return total
}
