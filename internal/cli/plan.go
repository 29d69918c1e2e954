package cli

import (
	"github.com/spf13/cobra"
)

// newPlanCommand creates the "plan" subcommand that previews pending changes
// and persists the plan artifact for a later apply.
func newPlanCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview pending infrastructure changes and save the plan artifact",
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

			logger.Info("planning stack", "workdir", orch.WorkDir())
			res, err := orch.Plan(cmd.Context())
			if err != nil {
				return err
			}
			return printExecution(cmd, res)
		},
	}

	addVarFlags(cmd)
	return cmd
}
