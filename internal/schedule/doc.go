// Package schedule compiles user-authored weekly block schedules into the
// calendar-trigger instants handed to an OS scheduler.
//
// # Overview
//
// A block schedule is a recurring weekly window ("Monday 09:00 to 17:30",
// or every day when no weekday is given) during which the external blocking
// tool should be active. The compiler works on a circular week timeline of
// 10080 minutes, with Monday 00:00 at offset 0.
//
// Compilation has two stages:
//
//   - Normalize: expand day-less entries to all seven weekdays, resolve
//     overnight wraparound, and reject invalid or overlapping windows.
//     Validation is all-or-nothing; a single bad entry fails the whole set.
//   - Expand: emit one Start and one Stop trigger per window. The target
//     scheduler only fires on exact (weekday, hour, minute) matches, so
//     each instant becomes its own trigger record.
//
// Intervals are half-open [start, end): adjacent windows may touch without
// overlapping, and a Stop instant may coincide with another window's Start.
package schedule
