package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// sensitivePlaceholder replaces sensitive output values unless the caller
// explicitly asks for them.
const sensitivePlaceholder = "(sensitive)"

// newOutputsCommand creates the "outputs" subcommand that prints declared
// stack outputs, masking sensitive values by default.
func newOutputsCommand(opts *Options) *cobra.Command {
	var (
		output        string
		showSensitive bool
	)

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "Show declared stack outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			orch, err := newOrchestrator(cmd, opts, nil, "")
			if err != nil {
				return err
			}

			outputs, err := orch.ShowOutputs(cmd.Context())
			if err != nil {
				return err
			}

			display := make(map[string]json.RawMessage, len(outputs))
			for name, val := range outputs {
				if val.Sensitive && !showSensitive {
					masked, _ := json.Marshal(sensitivePlaceholder)
					display[name] = masked
					continue
				}
				display[name] = val.Value
			}

			switch output {
			case "json":
				payload, err := json.MarshalIndent(display, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			default:
				names := make([]string, 0, len(display))
				for name := range display {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, string(display[name]))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plain", "Output format: plain|json")
	cmd.Flags().BoolVar(&showSensitive, "show-sensitive", false, "Print sensitive output values instead of masking them")
	return cmd
}
