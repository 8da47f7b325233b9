package cmd

import (
	"fmt"

	"repo2md/pkg/config"
	"repo2md/pkg/logging"
	"repo2md/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	debug      bool
	logFile    string

	// cfg and logger are set by the root pre-run hook.
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "repo2md",
	Short: "repo2md turns selected project files into one Markdown document",
	Long: `repo2md scans a project folder, lets you pick files with flags or an interactive
checkbox tree, and concatenates them into a single Markdown document with a directory
tree, binary placeholders, optional secret redaction and a token estimate.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file (.yaml, .yml or .toml)")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file, rotated")
}

// setup loads configuration and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	path := logFile
	if path == "" {
		path = cfg.LogFile
	}
	l, err := logging.Setup(logging.Options{
		Debug:      debug,
		AppName:    "repo2md",
		AppVersion: version.Get().Version,
		LogFile:    path,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	logger.Debug("Configuration loaded", zap.String("config", configPath), zap.Any("settings", cfg))
	return nil
}

// Execute runs the root command and returns the logger used, for syncing.
func Execute() (*zap.Logger, error) {
	err := RootCmd.Execute()
	return logger, err
}
