package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"autoselfcontrol/internal/schedule"
)

// Config mirrors the user's config.json (or .yaml). Keys keep the original
// kebab-case names so existing auto-selfcontrol config files load unchanged.
type Config struct {
	// Username is the OS account the blocking tool runs under. Passed
	// through to the tool, never interpreted here.
	Username string `json:"username"`

	// SelfControlPath is the absolute path of the SelfControl application
	// bundle (including the .app extension).
	SelfControlPath string `json:"selfcontrol-path"`

	// HostBlacklist is the global blacklist handed to the tool verbatim.
	// Per-schedule blacklists override it.
	HostBlacklist []string `json:"host-blacklist,omitempty"`

	BlockSchedules []ScheduleConfig `json:"block-schedules"`

	// LegacyMode makes the run path set the tool's BlockStartedDate
	// manually, needed for old SelfControl releases.
	LegacyMode bool `json:"legacy-mode,omitempty"`

	Logging LoggingConfig `json:"logging,omitempty"`
	Daemon  DaemonConfig  `json:"daemon,omitempty"`
}

// ScheduleConfig is one weekly window as authored. A missing weekday means
// the window applies every day.
type ScheduleConfig struct {
	Weekday     *WeekdayValue `json:"weekday,omitempty"`
	StartHour   int           `json:"start-hour"`
	StartMinute int           `json:"start-minute"`
	EndHour     int           `json:"end-hour"`
	EndMinute   int           `json:"end-minute"`

	BlockAsWhitelist bool     `json:"block-as-whitelist,omitempty"`
	HostBlacklist    []string `json:"host-blacklist,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level,omitempty"`
	Console *bool       `json:"console,omitempty"` // default true
	File    LoggingFile `json:"file,omitempty"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// DaemonConfig tunes the in-process trigger runner (daemon subcommand).
//
// MinLaunchInterval is a Go duration string (e.g. "30s", "5m"); it rate
// limits tool launches so a misbehaving trigger set cannot spawn the tool in
// a tight loop.
type DaemonConfig struct {
	MinLaunchInterval string `json:"min-launch-interval,omitempty"`
	Timezone          string `json:"timezone,omitempty"` // IANA TZ, e.g. "Europe/Berlin"
}

// ConsoleEnabled reports whether console logging is on (default true).
func (l LoggingConfig) ConsoleEnabled() bool {
	return l.Console == nil || *l.Console
}

// WeekdayValue decodes the "weekday" key, which historically is an ISO
// number (1 = Monday .. 7 = Sunday) but is also accepted as a day name.
type WeekdayValue struct {
	Day schedule.Weekday
}

func (w *WeekdayValue) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if n < 1 || n > 7 {
			return fmt.Errorf("weekday %d out of range (1=Monday .. 7=Sunday)", n)
		}
		w.Day = schedule.Weekday(n - 1)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("weekday must be a number 1-7 or a day name")
	}
	day, err := parseWeekdayName(s)
	if err != nil {
		return err
	}
	w.Day = day
	return nil
}

func (w WeekdayValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(w.Day) + 1)
}

func parseWeekdayName(s string) (schedule.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon":
		return schedule.Monday, nil
	case "tuesday", "tue":
		return schedule.Tuesday, nil
	case "wednesday", "wed":
		return schedule.Wednesday, nil
	case "thursday", "thu":
		return schedule.Thursday, nil
	case "friday", "fri":
		return schedule.Friday, nil
	case "saturday", "sat":
		return schedule.Saturday, nil
	case "sunday", "sun":
		return schedule.Sunday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
}

// Schedules converts the configured entries into the compiler's input form.
func (c *Config) Schedules() []schedule.BlockSchedule {
	out := make([]schedule.BlockSchedule, 0, len(c.BlockSchedules))
	for _, s := range c.BlockSchedules {
		entry := schedule.BlockSchedule{
			StartHour:        s.StartHour,
			StartMinute:      s.StartMinute,
			EndHour:          s.EndHour,
			EndMinute:        s.EndMinute,
			BlockAsWhitelist: s.BlockAsWhitelist,
			HostBlacklist:    append([]string(nil), s.HostBlacklist...),
		}
		if s.Weekday != nil {
			day := s.Weekday.Day
			entry.Weekday = &day
		}
		out = append(out, entry)
	}
	return out
}

// BlacklistFor resolves the blacklist the tool should receive for the window
// that came from entry (per-schedule override, else the global list).
func (c *Config) BlacklistFor(entry int) []string {
	if entry >= 0 && entry < len(c.BlockSchedules) && len(c.BlockSchedules[entry].HostBlacklist) > 0 {
		return c.BlockSchedules[entry].HostBlacklist
	}
	return c.HostBlacklist
}
