package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wanderpoints/platshim/internal/doctor"
	"github.com/wanderpoints/platshim/internal/shimfile"
)

func newDoctorCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check substitution rules against the project",
		Long: `Verify every substitute file exists, report whether each substituted
library still resolves on the platforms that keep it, and compare installed
versions with each rule's compat range.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, err := root.projectRoot()
			if err != nil {
				return err
			}
			path, err := root.tablePath()
			if err != nil {
				return err
			}

			f, err := shimfile.Load(root.fs, path)
			if err != nil {
				return err
			}

			rep, err := doctor.Check(cmd.OutOrStdout(), root.fs, f, doctor.Options{
				Root:    projectRoot,
				BaseDir: filepath.Dir(path),
			})
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d ok, %d info, %d warning(s), %d failure(s)\n", rep.OK, rep.Info, rep.Warn, rep.Fail)
			return err
		},
	}
}
