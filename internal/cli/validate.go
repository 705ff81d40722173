package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wanderpoints/platshim/internal/shimfile"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a substitution table file",
		Long:  `Check a substitution table against the schema and the rule checks. Defaults to the configured table.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := root.tablePath()
				if err != nil {
					return err
				}
				path = p
			}
			return runValidate(cmd, root.fs, path)
		},
	}
}

func runValidate(cmd *cobra.Command, fs afero.Fs, path string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Table validation: %s\n", path)

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := shimfile.Validate(data)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if result.Valid {
		fmt.Fprintln(out, "  [ OK ] Table is valid")
		return nil
	}

	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Fprintf(out, "  [FAIL] %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Fprintf(out, "  [FAIL] %s\n", issue.Message)
		}
	}
	return fmt.Errorf("table %s has %d issue(s)", path, len(result.Issues))
}
