package config

import (
	"reflect"
	"strings"

	"autoselfcontrol/pkg/logx"
)

// SummarizeChange returns a compact list of changed sections plus structured
// attrs for logging a reload. It deliberately logs counts and flags, not
// blacklist contents.
func SummarizeChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 5)
	attrs := make([]logx.Field, 0, 10)

	if strings.TrimSpace(oldCfg.Username) != strings.TrimSpace(newCfg.Username) ||
		strings.TrimSpace(oldCfg.SelfControlPath) != strings.TrimSpace(newCfg.SelfControlPath) ||
		oldCfg.LegacyMode != newCfg.LegacyMode {
		changed = append(changed, "tool")
		attrs = append(attrs,
			logx.String("username", strings.TrimSpace(newCfg.Username)),
			logx.Bool("legacy_mode", newCfg.LegacyMode),
		)
	}

	if !reflect.DeepEqual(oldCfg.BlockSchedules, newCfg.BlockSchedules) {
		changed = append(changed, "block-schedules")
		attrs = append(attrs, logx.Int("schedule_count", len(newCfg.BlockSchedules)))
	}

	if !reflect.DeepEqual(oldCfg.HostBlacklist, newCfg.HostBlacklist) {
		changed = append(changed, "host-blacklist")
		attrs = append(attrs, logx.Int("blacklist_hosts", len(newCfg.HostBlacklist)))
	}

	if !reflect.DeepEqual(oldCfg.Logging, newCfg.Logging) {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("log_level", newCfg.Logging.Level),
			logx.Bool("log_file", newCfg.Logging.File.Enabled),
		)
	}

	if oldCfg.Daemon != newCfg.Daemon {
		changed = append(changed, "daemon")
		attrs = append(attrs,
			logx.String("min_launch_interval", newCfg.Daemon.MinLaunchInterval),
			logx.String("timezone", newCfg.Daemon.Timezone),
		)
	}

	return changed, attrs
}
