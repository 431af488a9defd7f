package schedule

import "time"

const (
	// MinutesPerDay is the length of one day on the week timeline.
	MinutesPerDay = 24 * 60
	// MinutesPerWeek is the length of the circular week timeline
	// (Monday 00:00 = offset 0).
	MinutesPerWeek = 7 * MinutesPerDay
)

// Weekday is a day of the week with Monday as day 0, matching the week
// timeline origin. Note this differs from time.Weekday (Sunday = 0).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return "Weekday(?)"
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of Monday..Sunday.
func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// FromTime converts a time.Weekday (Sunday = 0) to a Weekday (Monday = 0).
func FromTime(d time.Weekday) Weekday {
	return Weekday((int(d) + 6) % 7)
}

// BlockSchedule is one user-authored weekly window, as written in the
// configuration. Weekday == nil means the window applies to every day.
//
// BlockAsWhitelist and HostBlacklist are per-window overrides passed through
// to the blocking tool; the compiler does not interpret them.
type BlockSchedule struct {
	Weekday     *Weekday
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int

	BlockAsWhitelist bool
	HostBlacklist    []string
}

func (s BlockSchedule) weekdays() []Weekday {
	if s.Weekday != nil {
		return []Weekday{*s.Weekday}
	}
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Interval is a validated window on the circular week timeline.
//
// Start and End are minute offsets in [0, MinutesPerWeek). The range is
// half-open [Start, End); when End < Start the window wraps past the end of
// the week into Monday. Start == End never occurs in validated output.
type Interval struct {
	Start int
	End   int

	// Entry is the index of the originating BlockSchedule, kept for error
	// reporting and for per-window tool overrides.
	Entry int
}

// Duration returns the logical length of the interval in minutes, accounting
// for wraparound.
func (iv Interval) Duration() int {
	return ((iv.End - iv.Start) % MinutesPerWeek + MinutesPerWeek) % MinutesPerWeek
}

// Contains reports whether minute-of-week m falls inside the interval.
func (iv Interval) Contains(m int) bool {
	if iv.Start < iv.End {
		return m >= iv.Start && m < iv.End
	}
	// wraps past Sunday midnight
	return m >= iv.Start || m < iv.End
}

// StartClock returns the interval start as (weekday, hour, minute).
func (iv Interval) StartClock() (Weekday, int, int) { return clock(iv.Start) }

// EndClock returns the interval end as (weekday, hour, minute).
func (iv Interval) EndClock() (Weekday, int, int) { return clock(iv.End) }

func clock(offset int) (Weekday, int, int) {
	offset = (offset%MinutesPerWeek + MinutesPerWeek) % MinutesPerWeek
	return Weekday(offset / MinutesPerDay),
		(offset % MinutesPerDay) / 60,
		offset % 60
}

// WeekOffset returns t's position on the week timeline, truncated to the
// minute.
func WeekOffset(t time.Time) int {
	return int(FromTime(t.Weekday()))*MinutesPerDay + t.Hour()*60 + t.Minute()
}
