package config

import (
	"fmt"
	"os"
	"strings"

	"autoselfcontrol/internal/schedule"
)

// Validate checks everything the compiler itself does not: required keys,
// the tool path, and daemon knobs. It also runs the schedule compiler once
// so a broken schedule set is rejected at load time, not at install time.
//
// Warnings (non-fatal advice, e.g. a missing global host-blacklist) are
// returned separately so the caller can log them.
func (c *Config) Validate() (warnings []string, err error) {
	if strings.TrimSpace(c.Username) == "" {
		return nil, fmt.Errorf("no username specified in config")
	}
	if strings.TrimSpace(c.SelfControlPath) == "" {
		return nil, fmt.Errorf("the setting 'selfcontrol-path' is required and must point to the location of SelfControl")
	}
	if _, statErr := os.Stat(c.SelfControlPath); statErr != nil {
		return nil, fmt.Errorf(
			"'selfcontrol-path' does not point to SelfControl (use an absolute path including the .app extension, e.g. /Applications/SelfControl.app): %w",
			statErr,
		)
	}
	if len(c.BlockSchedules) == 0 {
		return nil, fmt.Errorf("you need at least one schedule in 'block-schedules'")
	}

	if _, err := ParseDurationField("daemon.min-launch-interval", c.Daemon.MinLaunchInterval); err != nil {
		return nil, err
	}

	if _, err := schedule.Compile(c.Schedules()); err != nil {
		return nil, err
	}

	if len(c.HostBlacklist) == 0 {
		warnings = append(warnings,
			"no global 'host-blacklist' set; relying on SelfControl's own blacklist is not recommended")
	}
	return warnings, nil
}
