package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdash/deployctl/internal/config"
	"github.com/opsdash/deployctl/internal/env"
	"github.com/opsdash/deployctl/internal/terraform"
)

// tfVarPrefix is the environment prefix terraform-compatible tools read
// input variables from.
const tfVarPrefix = "TF_VAR_"

// resolveConfig loads configuration honoring --config, the default file
// location and flag overrides.
func resolveConfig(opts *Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if opts.WorkDir != "" {
		cfg.WorkDir = opts.WorkDir
	}
	if opts.Binary != "" {
		cfg.Binary = opts.Binary
	}
	return cfg, nil
}

// newOrchestrator builds the orchestrator for a command, merging the
// configured subprocess environment with per-command inline vars and an
// optional .env file.
func newOrchestrator(cmd *cobra.Command, opts *Options, inlineVars env.Vars, envFile string) (*terraform.Orchestrator, error) {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	timeouts, err := cfg.Durations()
	if err != nil {
		return nil, err
	}

	extra, err := cfg.SubprocessEnv()
	if err != nil {
		return nil, err
	}
	if envFile != "" {
		fileVars, err := env.LoadEnvFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("load env file %q: %w", envFile, err)
		}
		extra = env.Merge(extra, fileVars)
	}
	if len(inlineVars) > 0 {
		extra = env.Merge(extra, env.WithPrefix(inlineVars, tfVarPrefix))
	}

	return terraform.New(terraform.Options{
		WorkDir:  cfg.WorkDir,
		Binary:   cfg.Binary,
		PlanFile: cfg.PlanFile,
		Timeouts: timeouts,
		Env:      extra,
		Logger:   LoggerFromContext(cmd.Context()),
	})
}

// addVarFlags registers the subprocess variable flags shared by the
// lifecycle commands.
func addVarFlags(cmd *cobra.Command) {
	cmd.Flags().String("vars", "", "Additional input variables in k=v,k2=v2 format (exported as TF_VAR_*)")
	cmd.Flags().String("env-file", "", "Path to a .env file loaded into the tool environment")
}

// collectVarFlags reads the variable flags, falling back to DEPLOYCTL_VARS /
// DEPLOYCTL_ENV_FILE when the flags are unset.
func collectVarFlags(cmd *cobra.Command) (env.Vars, string, error) {
	var fallback varsEnv
	if err := parseEnv(&fallback); err != nil {
		return nil, "", err
	}

	varsSpec := cmd.Flag("vars").Value.String()
	if varsSpec == "" {
		varsSpec = fallback.Vars
	}
	envFile := cmd.Flag("env-file").Value.String()
	if envFile == "" {
		envFile = fallback.EnvFile
	}

	inline, err := env.ParseInlineVars(varsSpec)
	if err != nil {
		return nil, "", err
	}
	return inline, envFile, nil
}

// printExecution writes the sanitized tool output and converts a
// tool-reported failure into a command error.
func printExecution(cmd *cobra.Command, res terraform.ExecutionResult) error {
	if res.Stdout != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Stdout)
	}
	if res.Success {
		return nil
	}
	if res.Stderr != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Stderr)
	}
	if res.Error != "" {
		return fmt.Errorf("%s", res.Error)
	}
	return fmt.Errorf("tool exited with code %d", res.ExitCode)
}
