package registrar

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"autoselfcontrol/pkg/logx"
)

// launchdDir is where system-wide LaunchDaemons live.
const launchdDir = "/Library/LaunchDaemons"

// Launchd registers the trigger set as a LaunchDaemon with exact
// StartCalendarInterval matches. launchd's Weekday numbering has Sunday as
// 0, Monday as 1.
type Launchd struct {
	label string
	dir   string
	log   logx.Logger
}

func NewLaunchd(label string, log logx.Logger) *Launchd {
	return &Launchd{
		label: label,
		dir:   launchdDir,
		log:   log.With(logx.String("component", "launchd")),
	}
}

func (l *Launchd) plistPath() string {
	return filepath.Join(l.dir, l.label+".plist")
}

func (l *Launchd) Install(ctx context.Context, plan Plan) error {
	if err := l.Remove(ctx); err != nil {
		return err
	}

	body, err := renderPlist(l.label, plan)
	if err != nil {
		return err
	}
	if err := os.WriteFile(l.plistPath(), []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", l.plistPath(), err)
	}

	cmd := exec.CommandContext(ctx, "launchctl", "load", "-w", l.plistPath())
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("launchctl load: %w: %s", err, strings.TrimSpace(string(out)))
	}
	l.log.Info("launchd job installed",
		logx.String("plist", l.plistPath()),
		logx.Int("instants", len(instants(plan.Triggers))),
	)
	return nil
}

func (l *Launchd) Remove(ctx context.Context) error {
	if _, err := os.Stat(l.plistPath()); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Unload before deleting so launchd forgets the schedule; ignore unload
	// failures for jobs that were never loaded.
	cmd := exec.CommandContext(ctx, "launchctl", "unload", "-w", l.plistPath())
	if out, err := cmd.CombinedOutput(); err != nil {
		l.log.Warn("launchctl unload failed",
			logx.Err(err), logx.String("output", strings.TrimSpace(string(out))))
	}
	if err := os.Remove(l.plistPath()); err != nil {
		return fmt.Errorf("remove %s: %w", l.plistPath(), err)
	}
	l.log.Info("previous launchd job removed", logx.String("plist", l.plistPath()))
	return nil
}

func (l *Launchd) Installed(ctx context.Context) (bool, error) {
	_, err := os.Stat(l.plistPath())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

var plistTemplate = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
{{- range .Command}}
		<string>{{.}}</string>
{{- end}}
	</array>
	<key>StartCalendarInterval</key>
	<array>
{{- range .Instants}}
		<dict>
			<key>Weekday</key>
			<integer>{{.Weekday}}</integer>
			<key>Hour</key>
			<integer>{{.Hour}}</integer>
			<key>Minute</key>
			<integer>{{.Minute}}</integer>
		</dict>
{{- end}}
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`))

type plistInstant struct {
	Weekday, Hour, Minute int
}

func renderPlist(label string, plan Plan) (string, error) {
	if len(plan.Command) == 0 {
		return "", fmt.Errorf("plan has no command")
	}

	data := struct {
		Label    string
		Command  []string
		Instants []plistInstant
	}{Label: label, Command: plan.Command}

	for _, tr := range instants(plan.Triggers) {
		data.Instants = append(data.Instants, plistInstant{
			// launchd: Sunday=0, Monday=1 .. Saturday=6
			Weekday: (int(tr.Weekday) + 1) % 7,
			Hour:    tr.Hour,
			Minute:  tr.Minute,
		})
	}

	var b strings.Builder
	if err := plistTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render plist: %w", err)
	}
	return b.String(), nil
}
