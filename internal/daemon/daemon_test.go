package daemon

import (
	"testing"

	"github.com/robfig/cron/v3"

	"autoselfcontrol/internal/schedule"
)

func TestCronSpec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		tr   schedule.Trigger
		want string
	}{
		{
			name: "monday morning",
			tr:   schedule.Trigger{Weekday: schedule.Monday, Hour: 9, Minute: 0},
			want: "0 9 * * 1",
		},
		{
			name: "sunday night",
			tr:   schedule.Trigger{Weekday: schedule.Sunday, Hour: 23, Minute: 30},
			want: "30 23 * * 0",
		},
		{
			name: "saturday",
			tr:   schedule.Trigger{Weekday: schedule.Saturday, Hour: 0, Minute: 5},
			want: "5 0 * * 6",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cronSpec(tt.tr)
			if got != tt.want {
				t.Fatalf("cronSpec = %q, want %q", got, tt.want)
			}
			// every generated spec must be accepted by the cron parser
			if _, err := cron.ParseStandard(got); err != nil {
				t.Fatalf("cron.ParseStandard(%q): %v", got, err)
			}
		})
	}
}

func TestCronSpecsForCompiledSchedule(t *testing.T) {
	t.Parallel()
	c, err := schedule.Compile([]schedule.BlockSchedule{
		{StartHour: 9, EndHour: 17},
	})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	seen := map[string]bool{}
	for _, tr := range c.Triggers() {
		spec := cronSpec(tr)
		if _, err := cron.ParseStandard(spec); err != nil {
			t.Fatalf("invalid spec %q: %v", spec, err)
		}
		seen[spec] = true
	}
	if len(seen) != 14 {
		t.Fatalf("distinct specs = %d, want 14", len(seen))
	}
}
