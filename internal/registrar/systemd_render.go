package registrar

import (
	"fmt"
	"strings"

	"autoselfcontrol/internal/schedule"
)

var systemdDays = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// calendarSpec formats one trigger instant as a systemd OnCalendar
// expression, e.g. "Sun *-*-* 23:00:00". Like launchd's
// StartCalendarInterval, OnCalendar fires on the exact match every week.
func calendarSpec(tr schedule.Trigger) string {
	return fmt.Sprintf("%s *-*-* %02d:%02d:00", systemdDays[tr.Weekday], tr.Hour, tr.Minute)
}

// renderTimerUnit builds the .timer unit with one OnCalendar line per
// distinct trigger instant.
func renderTimerUnit(unit string, plan Plan) string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	b.WriteString("Description=auto-selfcontrol block schedule triggers\n\n")
	b.WriteString("[Timer]\n")
	for _, tr := range instants(plan.Triggers) {
		b.WriteString("OnCalendar=")
		b.WriteString(calendarSpec(tr))
		b.WriteString("\n")
	}
	b.WriteString("Unit=" + unit + ".service\n\n")
	b.WriteString("[Install]\n")
	b.WriteString("WantedBy=timers.target\n")
	return b.String()
}

// renderServiceUnit builds the oneshot .service the timer activates.
func renderServiceUnit(plan Plan) string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	b.WriteString("Description=auto-selfcontrol trigger job\n\n")
	b.WriteString("[Service]\n")
	b.WriteString("Type=oneshot\n")
	b.WriteString("ExecStart=" + shellJoin(plan.Command) + "\n")
	return b.String()
}

// shellJoin quotes argv for a systemd ExecStart line. systemd uses its own
// word splitting; double quotes around each argument are enough for paths
// with spaces.
func shellJoin(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		if strings.ContainsAny(a, " \t\"") {
			a = `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
		}
		quoted = append(quoted, a)
	}
	return strings.Join(quoted, " ")
}
