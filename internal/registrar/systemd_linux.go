//go:build linux

package registrar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/dbus"

	"autoselfcontrol/pkg/logx"
)

const systemdUnitDir = "/etc/systemd/system"

// Systemd registers the trigger set as a system timer unit over the systemd
// D-Bus API.
type Systemd struct {
	unit string
	dir  string
	log  logx.Logger
}

func NewSystemd(unit string, log logx.Logger) (Registrar, error) {
	return &Systemd{
		unit: unit,
		dir:  systemdUnitDir,
		log:  log.With(logx.String("component", "systemd")),
	}, nil
}

func (s *Systemd) timerName() string   { return s.unit + ".timer" }
func (s *Systemd) serviceName() string { return s.unit + ".service" }

func (s *Systemd) Install(ctx context.Context, plan Plan) error {
	if len(plan.Command) == 0 {
		return fmt.Errorf("plan has no command")
	}

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	// Stop a previous timer before replacing unit files, so the old
	// schedule can't fire mid-swap.
	if installed, _ := s.Installed(ctx); installed {
		ch := make(chan string, 1)
		if _, err := conn.StopUnitContext(ctx, s.timerName(), "replace", ch); err == nil {
			<-ch
		}
	}

	timerPath := filepath.Join(s.dir, s.timerName())
	servicePath := filepath.Join(s.dir, s.serviceName())
	if err := os.WriteFile(servicePath, []byte(renderServiceUnit(plan)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", servicePath, err)
	}
	if err := os.WriteFile(timerPath, []byte(renderTimerUnit(s.unit, plan)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", timerPath, err)
	}

	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("systemd daemon-reload: %w", err)
	}
	if _, _, err := conn.EnableUnitFilesContext(ctx, []string{s.timerName()}, false, true); err != nil {
		return fmt.Errorf("enable %s: %w", s.timerName(), err)
	}
	ch := make(chan string, 1)
	if _, err := conn.StartUnitContext(ctx, s.timerName(), "replace", ch); err != nil {
		return fmt.Errorf("start %s: %w", s.timerName(), err)
	}
	if result := <-ch; result != "done" {
		return fmt.Errorf("start %s: job result %q", s.timerName(), result)
	}

	s.log.Info("systemd timer installed",
		logx.String("timer", timerPath),
		logx.Int("instants", len(instants(plan.Triggers))),
	)
	return nil
}

func (s *Systemd) Remove(ctx context.Context) error {
	installed, err := s.Installed(ctx)
	if err != nil {
		return err
	}
	if !installed {
		return nil
	}

	conn, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	ch := make(chan string, 1)
	if _, err := conn.StopUnitContext(ctx, s.timerName(), "replace", ch); err == nil {
		<-ch
	}
	if _, err := conn.DisableUnitFilesContext(ctx, []string{s.timerName()}, false); err != nil {
		s.log.Warn("disable timer failed", logx.Err(err))
	}

	for _, name := range []string{s.timerName(), s.serviceName()} {
		path := filepath.Join(s.dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	if err := conn.ReloadContext(ctx); err != nil {
		return fmt.Errorf("systemd daemon-reload: %w", err)
	}
	s.log.Info("systemd timer removed", logx.String("unit", s.timerName()))
	return nil
}

func (s *Systemd) Installed(ctx context.Context) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, s.timerName()))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
