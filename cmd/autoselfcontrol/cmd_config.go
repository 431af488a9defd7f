package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create the config file if needed and open it in an editor",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// sampleConfig seeds a fresh installation. The schedule must be edited
// before activation; the blacklist is intentionally a placeholder.
const sampleConfig = `{
    "username": "your-os-username",
    "selfcontrol-path": "/Applications/SelfControl.app",
    "host-blacklist": [
        "twitter.com",
        "reddit.com"
    ],
    "block-schedules": [
        {"weekday": 1, "start-hour": 9, "start-minute": 0, "end-hour": 17, "end-minute": 30},
        {"weekday": 2, "start-hour": 9, "start-minute": 0, "end-hour": 17, "end-minute": 30}
    ]
}
`

func runConfig(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		seeded, err := seedConfig(cfgPath)
		if err != nil {
			return err
		}
		fmt.Println(">", seeded)
	} else if err != nil {
		return err
	}

	fmt.Println("> opening", cfgPath)
	return openEditor(cmd, cfgPath)
}

// seedConfig creates a first config file: a config.json in the working
// directory wins over the built-in sample.
func seedConfig(dst string) (string, error) {
	if local, err := os.ReadFile("config.json"); err == nil {
		if err := os.WriteFile(dst, local, 0o644); err != nil {
			return "", fmt.Errorf("copy config.json: %w", err)
		}
		return "copied config.json from the current directory to " + dst, nil
	}
	if err := os.WriteFile(dst, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return "created sample configuration at " + dst, nil
}

func openEditor(cmd *cobra.Command, path string) error {
	if editor := os.Getenv("EDITOR"); editor != "" {
		e := exec.CommandContext(cmd.Context(), editor, path)
		e.Stdin, e.Stdout, e.Stderr = os.Stdin, os.Stdout, os.Stderr
		return e.Run()
	}
	if runtime.GOOS == "darwin" {
		return exec.CommandContext(cmd.Context(), "open", "-t", path).Run()
	}
	fmt.Println("> $EDITOR not set; edit the file manually")
	return nil
}
