package schedule

import (
	"testing"
	"time"
)

// 2024-01-01 was a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestWeekOffset(t *testing.T) {
	t.Parallel()
	if got := WeekOffset(monday(0, 0)); got != 0 {
		t.Fatalf("Monday 00:00 offset = %d, want 0", got)
	}
	sunday := monday(23, 59).AddDate(0, 0, 6)
	if got, want := WeekOffset(sunday), MinutesPerWeek-1; got != want {
		t.Fatalf("Sunday 23:59 offset = %d, want %d", got, want)
	}
}

func TestActiveAt(t *testing.T) {
	t.Parallel()
	c := mustCompile(t, []BlockSchedule{
		{Weekday: wd(Monday), StartHour: 9, EndHour: 17},
		{Weekday: wd(Sunday), StartHour: 23, EndHour: 5},
	})

	tests := []struct {
		name   string
		at     time.Time
		active bool
		entry  int
	}{
		{name: "inside weekday window", at: monday(12, 30), active: true, entry: 0},
		{name: "at half-open end", at: monday(17, 0), active: false},
		{name: "at start", at: monday(9, 0), active: true, entry: 0},
		{name: "overnight tail on Monday", at: monday(3, 15), active: true, entry: 1},
		{name: "after overnight tail", at: monday(5, 0), active: false},
		{name: "overnight head on Sunday", at: monday(23, 30).AddDate(0, 0, 6), active: true, entry: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			iv, ok := c.ActiveAt(tt.at)
			if ok != tt.active {
				t.Fatalf("ActiveAt(%v) = %v, want %v", tt.at, ok, tt.active)
			}
			if ok && iv.Entry != tt.entry {
				t.Fatalf("entry = %d, want %d", iv.Entry, tt.entry)
			}
		})
	}
}

func TestRemainingMinutes(t *testing.T) {
	t.Parallel()
	c := mustCompile(t, []BlockSchedule{
		{Weekday: wd(Sunday), StartHour: 23, EndHour: 5},
	})

	sundayNight := monday(23, 30).AddDate(0, 0, 6)
	if got := c.RemainingMinutes(sundayNight); got != 330 {
		t.Fatalf("remaining at Sunday 23:30 = %d, want 330 (crosses the week seam)", got)
	}
	if got := c.RemainingMinutes(monday(4, 59)); got != 1 {
		t.Fatalf("remaining at Monday 04:59 = %d, want 1", got)
	}
	if got := c.RemainingMinutes(monday(12, 0)); got != 0 {
		t.Fatalf("remaining outside window = %d, want 0", got)
	}
}
