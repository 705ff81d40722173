package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type ruleEntry struct {
	Platform   string `json:"platform"`
	Module     string `json:"module"`
	Substitute string `json:"substitute"`
}

func newRulesCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List substitution rules",
		Long:  `List the loaded substitution table with substitute paths resolved to absolute paths.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := root.loadTable()
			if err != nil {
				return err
			}

			rules := table.Rules()
			if len(rules) == 0 && !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), "No substitution rules declared.")
				return nil
			}

			entries := make([]ruleEntry, 0, len(rules))
			for _, r := range rules {
				entries = append(entries, ruleEntry{
					Platform:   string(r.Platform),
					Module:     r.Module,
					Substitute: r.Substitute,
				})
			}

			if asJSON {
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PLATFORM\tMODULE\tSUBSTITUTE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Platform, e.Module, e.Substitute)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rules as JSON")
	return cmd
}
