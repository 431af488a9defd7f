package schedule

import (
	"errors"
	"testing"
)

func mustCompile(t *testing.T, entries []BlockSchedule) *Compiled {
	t.Helper()
	c, err := Compile(entries)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	return c
}

func TestExpandWraparound(t *testing.T) {
	t.Parallel()
	c := mustCompile(t, []BlockSchedule{
		{Weekday: wd(Sunday), StartHour: 23, EndHour: 5},
	})
	triggers := c.Triggers()
	if len(triggers) != 2 {
		t.Fatalf("triggers = %d, want 2", len(triggers))
	}

	// Ordered by week offset: the Monday 05:00 stop precedes the Sunday
	// 23:00 start.
	stop, start := triggers[0], triggers[1]
	if stop.Action != ActionStop || stop.Weekday != Monday || stop.Hour != 5 || stop.Minute != 0 {
		t.Fatalf("stop = %s %02d:%02d %s, want Monday 05:00 stop",
			stop.Weekday, stop.Hour, stop.Minute, stop.Action)
	}
	if start.Action != ActionStart || start.Weekday != Sunday || start.Hour != 23 || start.Minute != 0 {
		t.Fatalf("start = %s %02d:%02d %s, want Sunday 23:00 start",
			start.Weekday, start.Hour, start.Minute, start.Action)
	}
	if start.DurationMinutes != 360 {
		t.Fatalf("duration = %d, want 360 (unsplit wraparound length)", start.DurationMinutes)
	}
}

func TestExpandDailySchedule(t *testing.T) {
	t.Parallel()
	c := mustCompile(t, []BlockSchedule{
		{StartHour: 9, StartMinute: 0, EndHour: 17, EndMinute: 30},
	})
	triggers := c.Triggers()
	if len(triggers) != 14 {
		t.Fatalf("triggers = %d, want 14 (7 start/stop pairs)", len(triggers))
	}

	starts, stops := 0, 0
	for _, tr := range triggers {
		switch tr.Action {
		case ActionStart:
			starts++
			if tr.Hour != 9 || tr.Minute != 0 {
				t.Fatalf("start at %02d:%02d, want 09:00", tr.Hour, tr.Minute)
			}
			if tr.DurationMinutes != 510 {
				t.Fatalf("duration = %d, want 510", tr.DurationMinutes)
			}
		case ActionStop:
			stops++
			if tr.Hour != 17 || tr.Minute != 30 {
				t.Fatalf("stop at %02d:%02d, want 17:30", tr.Hour, tr.Minute)
			}
		}
	}
	if starts != 7 || stops != 7 {
		t.Fatalf("starts=%d stops=%d, want 7 each", starts, stops)
	}
}

func TestExpandAdjacentKeepsBothRecords(t *testing.T) {
	t.Parallel()
	c := mustCompile(t, []BlockSchedule{
		{Weekday: wd(Monday), StartHour: 9, EndHour: 17},
		{Weekday: wd(Monday), StartHour: 17, EndHour: 18},
	})
	triggers := c.Triggers()
	if len(triggers) != 4 {
		t.Fatalf("triggers = %d, want 4", len(triggers))
	}

	// At Monday 17:00 the first window's stop and the second's start share
	// an instant; both survive, stop first.
	at := triggers[1:3]
	if at[0].Offset() != at[1].Offset() {
		t.Fatalf("middle triggers at offsets %d and %d, want shared instant", at[0].Offset(), at[1].Offset())
	}
	if at[0].Action != ActionStop || at[1].Action != ActionStart {
		t.Fatalf("instant order = %s,%s, want stop,start", at[0].Action, at[1].Action)
	}
}

func TestExpandDurationRoundTrip(t *testing.T) {
	t.Parallel()
	c := mustCompile(t, []BlockSchedule{
		{StartHour: 6, EndHour: 7},
		{Weekday: wd(Saturday), StartHour: 23, StartMinute: 30, EndHour: 4, EndMinute: 15},
		{Weekday: wd(Monday), StartHour: 12, EndHour: 13, EndMinute: 45},
	})

	sum := 0
	for _, tr := range c.Triggers() {
		if tr.Action == ActionStart {
			sum += tr.DurationMinutes
		}
	}
	if sum != c.TotalMinutes() {
		t.Fatalf("start durations sum to %d, intervals cover %d", sum, c.TotalMinutes())
	}
	// 7*60 daily + 285 overnight + 105 lunch
	if want := 7*60 + 285 + 105; sum != want {
		t.Fatalf("total = %d, want %d", sum, want)
	}
}

func TestExpandInternalFault(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		iv   Interval
	}{
		{name: "degenerate", iv: Interval{Start: 300, End: 300}},
		{name: "outside timeline", iv: Interval{Start: 300, End: MinutesPerWeek + 1}},
		{name: "negative", iv: Interval{Start: -1, End: 300}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Expand([]Interval{tt.iv})
			var fault *InternalFaultError
			if !errors.As(err, &fault) {
				t.Fatalf("error = %v, want *InternalFaultError", err)
			}
		})
	}
}
