package cli

import (
	"github.com/spf13/cobra"
)

// newRunCommand creates the "run" subcommand dispatching a symbolic
// operation name (plan, apply, destroy). Unknown names fail without
// invoking the tool.
func newRunCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <operation>",
		Short: "Run a lifecycle operation by name (plan, apply, destroy)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			inlineVars, envFile, err := collectVarFlags(cmd)
			if err != nil {
				return err
			}

			orch, err := newOrchestrator(cmd, opts, inlineVars, envFile)
			if err != nil {
				return err
			}

			logger.Info("dispatching operation", "operation", args[0], "workdir", orch.WorkDir())
			res, err := orch.Dispatch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printExecution(cmd, res)
		},
	}

	addVarFlags(cmd)
	return cmd
}
