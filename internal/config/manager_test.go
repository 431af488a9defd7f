package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"autoselfcontrol/internal/schedule"
)

func writeConfig(t *testing.T, name, content string) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return NewManager(path)
}

func TestManagerParseJSON(t *testing.T) {
	t.Parallel()
	m := writeConfig(t, "config.json", `{
  "username": "alice",
  "selfcontrol-path": "/Applications/SelfControl.app",
  "block-schedules": [
    {"weekday": 7, "start-hour": 23, "start-minute": 0, "end-hour": 5, "end-minute": 0}
  ]
}`)
	cfg, err := m.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Username != "alice" {
		t.Fatalf("username = %q, want alice", cfg.Username)
	}
	if len(cfg.BlockSchedules) != 1 {
		t.Fatalf("schedules = %d, want 1", len(cfg.BlockSchedules))
	}
	if got := cfg.BlockSchedules[0].Weekday.Day; got != schedule.Sunday {
		t.Fatalf("weekday = %s, want Sunday", got)
	}
}

func TestManagerParseYAML(t *testing.T) {
	t.Parallel()
	m := writeConfig(t, "config.yaml", `
username: alice
selfcontrol-path: /Applications/SelfControl.app
block-schedules:
  - weekday: tue
    start-hour: 9
    start-minute: 15
    end-hour: 11
    end-minute: 0
`)
	cfg, err := m.Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := cfg.BlockSchedules[0].Weekday.Day; got != schedule.Tuesday {
		t.Fatalf("weekday = %s, want Tuesday", got)
	}
	if cfg.BlockSchedules[0].StartMinute != 15 {
		t.Fatalf("start-minute = %d, want 15", cfg.BlockSchedules[0].StartMinute)
	}
}

func TestManagerParseRejectsUnknownKeys(t *testing.T) {
	t.Parallel()
	m := writeConfig(t, "config.json", `{
  "username": "alice",
  "selfcontrol-path": "/x",
  "block-scheduels": []
}`)
	if _, err := m.Parse(); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestManagerParseRejectsTrailingData(t *testing.T) {
	t.Parallel()
	m := writeConfig(t, "config.json", `{"username":"a","selfcontrol-path":"/x","block-schedules":[]}{}`)
	if _, err := m.Parse(); err == nil {
		t.Fatal("expected error for trailing data")
	}
}

func TestWeekdayValueForms(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want schedule.Weekday
		ok   bool
	}{
		{name: "iso monday", raw: `1`, want: schedule.Monday, ok: true},
		{name: "iso sunday", raw: `7`, want: schedule.Sunday, ok: true},
		{name: "name", raw: `"Friday"`, want: schedule.Friday, ok: true},
		{name: "abbrev", raw: `"sat"`, want: schedule.Saturday, ok: true},
		{name: "zero", raw: `0`, ok: false},
		{name: "eight", raw: `8`, ok: false},
		{name: "gibberish", raw: `"someday"`, ok: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var w WeekdayValue
			err := w.UnmarshalJSON([]byte(tt.raw))
			if tt.ok != (err == nil) {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && w.Day != tt.want {
				t.Fatalf("day = %s, want %s", w.Day, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	toolPath := filepath.Join(t.TempDir(), "SelfControl.app")
	if err := os.MkdirAll(toolPath, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	base := func() *Config {
		return &Config{
			Username:        "alice",
			SelfControlPath: toolPath,
			HostBlacklist:   []string{"twitter.com"},
			BlockSchedules: []ScheduleConfig{
				{StartHour: 9, EndHour: 17},
			},
		}
	}

	if _, err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	t.Run("missing username", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.Username = ""
		if _, err := cfg.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing tool path", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.SelfControlPath = filepath.Join(toolPath, "nope.app")
		if _, err := cfg.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("no schedules", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.BlockSchedules = nil
		if _, err := cfg.Validate(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("overlapping schedules surface compiler error", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		day := WeekdayValue{Day: schedule.Monday}
		cfg.BlockSchedules = []ScheduleConfig{
			{Weekday: &day, StartHour: 9, EndHour: 17},
			{Weekday: &day, StartHour: 16, EndHour: 18},
		}
		_, err := cfg.Validate()
		var oe *schedule.OverlapError
		if !errors.As(err, &oe) {
			t.Fatalf("error = %v, want *schedule.OverlapError", err)
		}
	})

	t.Run("blacklist warning", func(t *testing.T) {
		t.Parallel()
		cfg := base()
		cfg.HostBlacklist = nil
		warnings, err := cfg.Validate()
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("warnings = %d, want 1", len(warnings))
		}
	})
}

func TestBlacklistFor(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		HostBlacklist: []string{"global.example"},
		BlockSchedules: []ScheduleConfig{
			{StartHour: 9, EndHour: 10},
			{StartHour: 11, EndHour: 12, HostBlacklist: []string{"override.example"}},
		},
	}
	if got := cfg.BlacklistFor(0); len(got) != 1 || got[0] != "global.example" {
		t.Fatalf("BlacklistFor(0) = %v, want global list", got)
	}
	if got := cfg.BlacklistFor(1); len(got) != 1 || got[0] != "override.example" {
		t.Fatalf("BlacklistFor(1) = %v, want override", got)
	}
}
