package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// newStatusCommand creates the "status" subcommand reporting whether the
// tool binary is executable and the working directory is initialized. The
// two checks are independent; an uninitialized directory is not an error.
func newStatusCommand(opts *Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report tool availability and working directory initialization",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := newOrchestrator(cmd, opts, nil, "")
			if err != nil {
				return err
			}

			info := orch.CheckAvailability(cmd.Context())

			switch output {
			case "json":
				type out struct {
					Available   bool   `json:"available"`
					Version     string `json:"version,omitempty"`
					Initialized bool   `json:"initialized"`
					Error       string `json:"error,omitempty"`
				}
				payload, err := json.MarshalIndent(out(info), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "available:   %t\n", info.Available)
				if info.Version != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "version:     %s\n", info.Version)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "initialized: %t\n", info.Initialized)
				if info.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "error:       %s\n", info.Error)
				}
			}

			if !info.Available {
				return fmt.Errorf("tool is not available: %s", info.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output format: plain|json")
	return cmd
}
