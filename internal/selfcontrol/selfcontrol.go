// Package selfcontrol drives the external SelfControl application: its
// preference defaults, its running state, and the actual launch with a
// block duration. Everything here goes through exec; nothing in this
// package decides when blocking should happen.
package selfcontrol

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"autoselfcontrol/internal/config"
	"autoselfcontrol/internal/schedule"
	"autoselfcontrol/pkg/logx"
)

// bundleID is SelfControl's preference domain.
const bundleID = "org.eyebeam.SelfControl"

// distantFutureYear marks the NSDate.distantFuture sentinel SelfControl
// stores in BlockStartedDate when no block is active.
const distantFutureYear = "4001"

var (
	// ErrAlreadyRunning means SelfControl reports an active block; starting
	// another one would fail inside the tool.
	ErrAlreadyRunning = errors.New("selfcontrol is already running")
	// ErrNoActiveSchedule means no block window covers the current time.
	ErrNoActiveSchedule = errors.New("no block schedule is active at the moment")
)

// Settings is one block invocation's parameters, written to SelfControl's
// defaults before launch. The duration makes the tool self-terminate even
// if the stop trigger never fires.
type Settings struct {
	DurationMinutes int
	Whitelist       bool
	HostBlacklist   []string
}

// Tool wraps one SelfControl installation for one user account.
type Tool struct {
	appPath  string
	username string
	legacy   bool
	log      logx.Logger
}

func New(cfg *config.Config, log logx.Logger) *Tool {
	return &Tool{
		appPath:  cfg.SelfControlPath,
		username: cfg.Username,
		legacy:   cfg.LegacyMode,
		log:      log.With(logx.String("component", "selfcontrol")),
	}
}

// binaryPath returns the executable inside the .app bundle.
func binaryPath(appPath string) string {
	return filepath.Join(appPath, "Contents", "MacOS", bundleID)
}

// Running reports whether SelfControl has an active block, by reading its
// BlockStartedDate default. A missing key or the distant-future sentinel
// both mean "not running".
func (t *Tool) Running(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "sudo", "-u", t.username,
		"defaults", "read", bundleID, "BlockStartedDate")
	out, err := cmd.CombinedOutput()
	if err != nil {
		// defaults read exits non-zero when the key does not exist.
		return false, nil
	}
	return blockStarted(string(out)), nil
}

// blockStarted interprets a BlockStartedDate value.
func blockStarted(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	return !strings.HasPrefix(s, distantFutureYear+"-")
}

// Configure writes the block parameters into SelfControl's defaults.
func (t *Tool) Configure(ctx context.Context, s Settings) error {
	if err := t.writeDefault(ctx, "BlockDuration", "-int", strconv.Itoa(s.DurationMinutes)); err != nil {
		return err
	}
	t.log.Info("set block duration", logx.Int("minutes", s.DurationMinutes))

	whitelist := "0"
	if s.Whitelist {
		whitelist = "1"
	}
	if err := t.writeDefault(ctx, "BlockAsWhitelist", "-int", whitelist); err != nil {
		return err
	}

	if len(s.HostBlacklist) > 0 {
		args := append([]string{"-array"}, s.HostBlacklist...)
		if err := t.writeDefault(ctx, "HostBlacklist", args...); err != nil {
			return err
		}
		t.log.Info("set host blacklist", logx.Int("hosts", len(s.HostBlacklist)))
	}

	if t.legacy {
		// Old SelfControl releases expect the caller to stamp the start
		// date themselves.
		stamp := time.Now().UTC().Format("2006-01-02 15:04:05 +0000")
		if err := t.writeDefault(ctx, "BlockStartedDate", "-date", stamp); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tool) writeDefault(ctx context.Context, key string, args ...string) error {
	argv := append([]string{"-u", t.username, "defaults", "write", bundleID, key}, args...)
	cmd := exec.CommandContext(ctx, "sudo", argv...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("defaults write %s: %w: %s", key, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Start launches the SelfControl binary with the target user's uid and
// --install, which begins the block using the defaults written earlier.
func (t *Tool) Start(ctx context.Context) error {
	u, err := user.Lookup(t.username)
	if err != nil {
		return fmt.Errorf("lookup user %q: %w", t.username, err)
	}
	cmd := exec.CommandContext(ctx, binaryPath(t.appPath), u.Uid, "--install")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("start selfcontrol: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Block configures and starts one block in a single step.
func (t *Tool) Block(ctx context.Context, s Settings) error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("block duration must be positive, got %d", s.DurationMinutes)
	}
	if err := t.Configure(ctx, s); err != nil {
		return err
	}
	return t.Start(ctx)
}

// Launch is the trigger-time entry point: find the window covering now,
// refuse to stack blocks, and start the tool for the window's remaining
// minutes. Returns the duration passed to the tool.
func (t *Tool) Launch(ctx context.Context, cfg *config.Config, plan *schedule.Compiled, now time.Time) (int, error) {
	running, err := t.Running(ctx)
	if err != nil {
		return 0, err
	}
	if running {
		return 0, ErrAlreadyRunning
	}

	iv, ok := plan.ActiveAt(now)
	if !ok {
		return 0, ErrNoActiveSchedule
	}

	duration := plan.RemainingMinutes(now)
	entry := cfg.BlockSchedules[iv.Entry]
	err = t.Block(ctx, Settings{
		DurationMinutes: duration,
		Whitelist:       entry.BlockAsWhitelist,
		HostBlacklist:   cfg.BlacklistFor(iv.Entry),
	})
	if err != nil {
		return 0, err
	}
	d, h, m := iv.EndClock()
	t.log.Info("selfcontrol started",
		logx.Int("duration_min", duration),
		logx.String("until", fmt.Sprintf("%s %02d:%02d", d, h, m)),
	)
	return duration, nil
}
