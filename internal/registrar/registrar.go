// Package registrar installs the compiled trigger set into the operating
// system's recurring-task store, so the tool is re-invoked at every trigger
// instant without this program staying resident.
//
// Two backends exist: launchd (darwin, a LaunchDaemon plist with one
// StartCalendarInterval per instant) and systemd (linux, a .timer unit with
// one OnCalendar line per instant). Both fire the same job body — this
// binary's "run" subcommand — which re-reads the config and decides whether
// a window is active. Stop instants therefore need no separate action: the
// job fired at a window's end simply finds nothing active (or starts the
// adjacent next window, which keeps back-to-back windows continuous).
package registrar

import (
	"context"
	"fmt"
	"runtime"

	"autoselfcontrol/internal/schedule"
	"autoselfcontrol/pkg/logx"
)

// DefaultLabel is the reverse-DNS label of the launchd job, kept from the
// original auto-selfcontrol so upgrades replace old installations.
const DefaultLabel = "com.parrot-bytes.auto-selfcontrol"

// DefaultUnit is the systemd unit base name.
const DefaultUnit = "auto-selfcontrol"

// Plan is everything a backend needs to materialize the trigger set: the
// command to run at each instant and the instants themselves.
type Plan struct {
	// Command is the argv executed at every trigger, typically
	// [/path/to/autoselfcontrol, run, --config, /path/to/config.json].
	Command []string

	// Triggers is the compiled, ordered trigger set.
	Triggers []schedule.Trigger
}

// Registrar manages one recurring-task definition in the OS scheduler store.
type Registrar interface {
	// Install replaces any existing definition with one built from plan.
	Install(ctx context.Context, plan Plan) error
	// Remove deletes the definition. Removing a missing definition is not
	// an error.
	Remove(ctx context.Context) error
	// Installed reports whether a definition is currently present.
	Installed(ctx context.Context) (bool, error)
}

// ForSystem picks the native backend for the running OS.
func ForSystem(log logx.Logger) (Registrar, error) {
	switch runtime.GOOS {
	case "darwin":
		return NewLaunchd(DefaultLabel, log), nil
	case "linux":
		return NewSystemd(DefaultUnit, log)
	default:
		return nil, fmt.Errorf("no scheduler backend for %s", runtime.GOOS)
	}
}

// instants deduplicates triggers down to their distinct calendar instants,
// preserving order. A shared Stop/Start instant only needs one firing; the
// job body resolves what to do.
func instants(triggers []schedule.Trigger) []schedule.Trigger {
	seen := make(map[int]bool, len(triggers))
	out := make([]schedule.Trigger, 0, len(triggers))
	for _, tr := range triggers {
		if seen[tr.Offset()] {
			continue
		}
		seen[tr.Offset()] = true
		out = append(out, tr)
	}
	return out
}
