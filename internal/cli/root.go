// Package cli defines the command-line interface for deployctl.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdash/deployctl/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	WorkDir    string
	Binary     string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	var defaults baseEnv
	if err := parseEnv(&defaults); err != nil {
		return err
	}
	if defaults.LogLevel == "" {
		defaults.LogLevel = "info"
	}

	rootOpts := &Options{
		ConfigPath: defaults.ConfigPath,
		LogLevel:   logging.ParseLevel(defaults.LogLevel),
	}

	rootCmd := newRootCommand(rootOpts, logger, defaults)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger, defaults baseEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployctl",
		Short: "deployctl drives a declarative infrastructure tool through its plan/apply/destroy lifecycle",
		Long: "deployctl wraps an infrastructure-as-code binary (terraform by default) running in a fixed\n" +
			"working directory: it plans, applies and destroys the managed stack, inspects state and\n" +
			"outputs, and reports tool availability, with bounded timeouts and display-safe output.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", opts.ConfigPath, "Path to deployctl.yaml configuration file")
	cmd.PersistentFlags().StringVar(&opts.WorkDir, "workdir", defaults.WorkDir, "Working directory holding the tool configuration")
	cmd.PersistentFlags().StringVar(&opts.Binary, "binary", defaults.Binary, "Tool executable name or path")
	cmd.PersistentFlags().String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPlanCommand(opts),
		newApplyCommand(opts),
		newDestroyCommand(opts),
		newStateCommand(opts),
		newOutputsCommand(opts),
		newStatusCommand(opts),
		newRunCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
