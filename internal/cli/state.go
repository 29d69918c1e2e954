package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newStateCommand creates the "state" subcommand that lists resources
// currently tracked by the tool.
func newStateCommand(opts *Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show resources tracked in the current state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := newOrchestrator(cmd, opts, nil, "")
			if err != nil {
				return err
			}

			snap, err := orch.ShowState(cmd.Context())
			if err != nil {
				return err
			}

			switch output {
			case "json":
				type out struct {
					ResourceCount     int      `json:"resource_count"`
					ResourceAddresses []string `json:"resource_addresses"`
				}
				payload, err := json.MarshalIndent(out{
					ResourceCount:     snap.ResourceCount,
					ResourceAddresses: snap.ResourceAddresses,
				}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%d resources\n", snap.ResourceCount)
				for _, addr := range snap.ResourceAddresses {
					fmt.Fprintln(cmd.OutOrStdout(), addr)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output format: plain|json")
	return cmd
}
