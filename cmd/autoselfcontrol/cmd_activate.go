package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"autoselfcontrol/internal/registrar"
	"autoselfcontrol/internal/schedule"
	"autoselfcontrol/internal/selfcontrol"
	"autoselfcontrol/pkg/logx"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Install the block schedule into the OS scheduler",
	Long: "Compile the configured block schedules into trigger instants, register\n" +
		"them with the system scheduler (launchd or systemd), and start SelfControl\n" +
		"immediately if a window is active right now.",
	RunE: runActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)
}

func runActivate(cmd *cobra.Command, args []string) error {
	if err := requireRoot("activate"); err != nil {
		return err
	}

	mgr, cfg, svc, log, err := setup()
	if err != nil {
		return err
	}
	defer svc.Close()

	plan, err := schedule.Compile(cfg.Schedules())
	if err != nil {
		return err
	}
	log.Info("schedule compiled",
		logx.Int("windows", len(plan.Intervals())),
		logx.Int("triggers", len(plan.Triggers())),
		logx.Int("blocked_min_per_week", plan.TotalMinutes()),
	)

	reg, err := registrar.ForSystem(log)
	if err != nil {
		return err
	}
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate own binary: %w", err)
	}
	ctx := cmd.Context()
	err = reg.Install(ctx, registrar.Plan{
		Command:  []string{exe, "run", "--config", mgr.Path()},
		Triggers: plan.Triggers(),
	})
	if err != nil {
		return err
	}

	// Mirror the installed behavior right away: if a window covers this
	// minute, blocking should not wait for the next trigger.
	tool := selfcontrol.New(cfg, log)
	duration, err := tool.Launch(ctx, cfg, plan, time.Now())
	switch {
	case errors.Is(err, selfcontrol.ErrAlreadyRunning), errors.Is(err, selfcontrol.ErrNoActiveSchedule):
		log.Info(err.Error())
	case err != nil:
		return err
	default:
		log.Info("selfcontrol started for the active window", logx.Int("duration_min", duration))
	}

	log.Info("activation complete")
	return nil
}
