package main

import (
	"github.com/spf13/cobra"

	"autoselfcontrol/internal/daemon"
	"autoselfcontrol/pkg/logx"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Fire triggers in-process instead of using the OS scheduler",
	Long: "Run in the foreground with an internal cron scheduler, one entry per\n" +
		"trigger instant. The config file is watched; edits swap the trigger set\n" +
		"without a restart. Useful on hosts where installing a launchd job or\n" +
		"systemd timer is unwanted.",
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := requireRoot("daemon"); err != nil {
		return err
	}

	mgr, _, svc, log, err := setup()
	if err != nil {
		return err
	}
	defer svc.Close()

	log.Info("daemon starting", logx.String("config", mgr.Path()))
	return daemon.New(mgr, log).Run(cmd.Context())
}
