package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"autoselfcontrol/internal/config"
	"autoselfcontrol/pkg/logx"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "autoselfcontrol",
	Short: "Schedule automatic start and stop of SelfControl",
	Long: "Small utility to schedule start and stop times of SelfControl.\n" +
		"Block schedules are defined in a config file (JSON or YAML); 'activate'\n" +
		"compiles them into OS scheduler triggers that invoke SelfControl at the\n" +
		"right moments.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(),
		"path to the config file (json or yaml)")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, "auto-selfcontrol", "config.json")
}

// setup loads and validates the config, then brings up logging per its
// logging section. Callers must Close the returned service.
func setup() (*config.Manager, *config.Config, *logx.Service, logx.Logger, error) {
	mgr := config.NewManager(cfgPath)
	mgr.SetLogger(logx.NewConsole("info"))

	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, nil, logx.Logger{}, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	svc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.ConsoleEnabled(),
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	mgr.SetLogger(log)
	return mgr, cfg, svc, log, nil
}

// requireRoot guards commands that touch the system scheduler store or
// another user's preferences.
func requireRoot(subcommand string) error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("elevated rights required; run 'sudo autoselfcontrol %s'", subcommand)
	}
	return nil
}
