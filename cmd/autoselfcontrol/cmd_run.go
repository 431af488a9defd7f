package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"autoselfcontrol/internal/schedule"
	"autoselfcontrol/internal/selfcontrol"
	"autoselfcontrol/pkg/logx"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Trigger-time entry point: start SelfControl if a window is active",
	Long: "Invoked by the OS scheduler at each trigger instant. Re-reads the config,\n" +
		"finds the window covering the current minute and starts SelfControl for\n" +
		"its remaining duration. Exits quietly when no window is active or a block\n" +
		"is already running.",
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := requireRoot("run"); err != nil {
		return err
	}

	_, cfg, svc, log, err := setup()
	if err != nil {
		return err
	}
	defer svc.Close()

	plan, err := schedule.Compile(cfg.Schedules())
	if err != nil {
		return err
	}

	tool := selfcontrol.New(cfg, log)
	duration, err := tool.Launch(cmd.Context(), cfg, plan, time.Now())
	switch {
	case errors.Is(err, selfcontrol.ErrAlreadyRunning), errors.Is(err, selfcontrol.ErrNoActiveSchedule):
		// Expected at stop instants and when triggers overlap a running
		// block; not a failure.
		log.Info(err.Error())
		return nil
	case err != nil:
		return err
	}

	log.Info("selfcontrol started", logx.Int("duration_min", duration))
	return nil
}
