package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDestroyCommand creates the "destroy" subcommand that tears down all
// managed resources. The confirmation gate lives here, not in the
// orchestrator.
func newDestroyCommand(opts *Options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy all resources tracked in the current state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())

			if !yes {
				return fmt.Errorf("destroy removes all managed resources; re-run with --yes to confirm")
			}

			inlineVars, envFile, err := collectVarFlags(cmd)
			if err != nil {
				return err
			}

			orch, err := newOrchestrator(cmd, opts, inlineVars, envFile)
			if err != nil {
				return err
			}

			logger.Warn("destroying stack", "workdir", orch.WorkDir())
			res, err := orch.Destroy(cmd.Context())
			if err != nil {
				return err
			}
			return printExecution(cmd, res)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destroy without prompting")
	addVarFlags(cmd)
	return cmd
}
