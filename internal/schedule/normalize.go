package schedule

import "sort"

// piece is a non-wrapping fragment of an interval, used only for the overlap
// walk. A wraparound interval contributes two pieces; all pieces satisfy
// 0 <= start < end <= MinutesPerWeek.
type piece struct {
	start, end int
	iv         int // index into the interval slice under construction
}

// Normalize validates the configured entries and returns the canonical
// interval set, sorted by start offset.
//
// Day-less entries are expanded to all seven weekdays first. A window whose
// end is not later than its start wraps into the following day; if that
// pushes it past Sunday midnight it occupies the tail of the week plus the
// head of Monday, and overlap checking accounts for both sides.
//
// Validation is all-or-nothing: the first violation aborts with a typed
// error (InvalidTimeError, DegenerateIntervalError or OverlapError) and no
// interval set is produced.
func Normalize(entries []BlockSchedule) ([]Interval, error) {
	var (
		intervals []Interval
		pieces    []piece
	)

	for i, e := range entries {
		if err := checkTimes(i, e); err != nil {
			return nil, err
		}
		if e.StartHour == e.EndHour && e.StartMinute == e.EndMinute {
			return nil, &DegenerateIntervalError{Entry: i, Hour: e.StartHour, Minute: e.StartMinute}
		}

		for _, day := range e.weekdays() {
			start := int(day)*MinutesPerDay + e.StartHour*60 + e.StartMinute
			end := int(day)*MinutesPerDay + e.EndHour*60 + e.EndMinute
			if end < start {
				end += MinutesPerDay // overnight
			}

			iv := len(intervals)
			intervals = append(intervals, Interval{
				Start: start,
				End:   end % MinutesPerWeek,
				Entry: i,
			})

			if end <= MinutesPerWeek {
				pieces = append(pieces, piece{start: start, end: end, iv: iv})
			} else {
				// Sunday-night wrap: split at the week boundary so the
				// pairwise walk sees both occupied ranges.
				pieces = append(pieces, piece{start: start, end: MinutesPerWeek, iv: iv})
				pieces = append(pieces, piece{start: 0, end: end - MinutesPerWeek, iv: iv})
			}
		}
	}

	sort.Slice(pieces, func(a, b int) bool {
		if pieces[a].start != pieces[b].start {
			return pieces[a].start < pieces[b].start
		}
		return pieces[a].end < pieces[b].end
	})
	for i := 1; i < len(pieces); i++ {
		prev, cur := pieces[i-1], pieces[i]
		if cur.start < prev.end {
			a, b := intervals[prev.iv], intervals[cur.iv]
			return nil, &OverlapError{EntryA: a.Entry, EntryB: b.Entry, A: a, B: b}
		}
	}

	sort.Slice(intervals, func(a, b int) bool {
		return intervals[a].Start < intervals[b].Start
	})
	return intervals, nil
}

func checkTimes(entry int, e BlockSchedule) error {
	if e.Weekday != nil && !e.Weekday.Valid() {
		return &InvalidTimeError{Entry: entry, Field: "weekday", Value: int(*e.Weekday)}
	}
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"start-hour", e.StartHour, 23},
		{"start-minute", e.StartMinute, 59},
		{"end-hour", e.EndHour, 23},
		{"end-minute", e.EndMinute, 59},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return &InvalidTimeError{Entry: entry, Field: c.field, Value: c.value}
		}
	}
	return nil
}
