package main

import (
	"github.com/spf13/cobra"

	"autoselfcontrol/internal/registrar"
	"autoselfcontrol/pkg/logx"
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Uninstall the recurring-task definition from the OS scheduler",
	RunE:  runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	if err := requireRoot("remove"); err != nil {
		return err
	}

	log := logx.NewConsole("info")
	reg, err := registrar.ForSystem(log)
	if err != nil {
		return err
	}

	installed, err := reg.Installed(cmd.Context())
	if err != nil {
		return err
	}
	if !installed {
		log.Info("nothing installed")
		return nil
	}
	if err := reg.Remove(cmd.Context()); err != nil {
		return err
	}
	log.Info("schedule removed; any currently running block finishes on its own timer")
	return nil
}
