package cli

import (
	"github.com/spf13/cobra"
)

// newApplyCommand creates the "apply" subcommand that applies the plan
// artifact produced by the most recent plan. It never re-plans: without an
// artifact the tool's own error is surfaced.
func newApplyCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the previously saved plan artifact",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			inlineVars, envFile, err := collectVarFlags(cmd)
			if err != nil {
				return err
			}

			orch, err := newOrchestrator(cmd, opts, inlineVars, envFile)
			if err != nil {
				return err
			}

			logger.Info("applying stack", "workdir", orch.WorkDir())
			res, err := orch.Apply(cmd.Context())
			if err != nil {
				return err
			}
			return printExecution(cmd, res)
		},
	}

	addVarFlags(cmd)
	return cmd
}
