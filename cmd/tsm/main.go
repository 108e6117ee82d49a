package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicobailon/tsm/internal/config"
	"github.com/nicobailon/tsm/internal/deps"
	"github.com/nicobailon/tsm/internal/logging"
	"github.com/nicobailon/tsm/internal/shell"
	"github.com/nicobailon/tsm/internal/tmux"
	"github.com/nicobailon/tsm/internal/tui"
	"github.com/nicobailon/tsm/pkg/version"
)

var (
	configFile string
	noPreview  bool
	logFile    string
	listFilter string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tsm",
	Short:         "Browse, preview and manage tmux sessions running coding agents",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/tsm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.Flags().BoolVar(&noPreview, "no-preview", false, "start with the preview pane hidden")

	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "only sessions whose name or path contains TEXT")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadServices checks for tmux, reads the config and installs logging.
// The returned closer releases the log file.
func loadServices() (*config.Config, *tmux.Tmux, io.Closer, error) {
	if err := deps.Require(); err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	closer, err := logging.Setup(cfg.LogFile, cfg.Level())
	if err != nil {
		return nil, nil, nil, err
	}
	t := tmux.New(&shell.ExecCommander{}, cfg.AgentCommand)
	return cfg, t, closer, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, t, closer, err := loadServices()
	if err != nil {
		return err
	}
	defer closer.Close()

	if noPreview {
		cfg.ShowPreview = false
	}

	target, err := tui.New(cfg, t).Run()
	if err != nil {
		return err
	}
	if target == "" {
		return nil
	}

	attach := t.AttachCommand(target)
	attach.Stdin = os.Stdin
	attach.Stdout = os.Stdout
	attach.Stderr = os.Stderr
	if err := attach.Run(); err != nil {
		return fmt.Errorf("attach %s: %w", target, err)
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print sessions grouped by working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, t, closer, err := loadServices()
		if err != nil {
			return err
		}
		defer closer.Close()

		sessions, err := t.ListSessions()
		if err != nil {
			return err
		}
		return printSessions(cmd.OutOrStdout(), sessions, listFilter)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
	},
}
