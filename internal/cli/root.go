package cli

import (
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wanderpoints/platshim/internal/branding"
	"github.com/wanderpoints/platshim/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// rootOptions carries global flags and shared dependencies to subcommands.
type rootOptions struct {
	root    string
	table   string
	verbose bool

	fs     afero.Fs
	logger *slog.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{fs: fs, logger: newLogger(nil, false)}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` substitutes platform-incompatible modules (such as a native map view on
web builds) with registered stub modules at bundle time, and defers every
other import to node-style resolution.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.Load()
			if err := config.BindFlag(config.KeyRoot, cmd.Root().PersistentFlags().Lookup("root")); err != nil {
				return err
			}
			if err := config.BindFlag(config.KeyTable, cmd.Root().PersistentFlags().Lookup("table")); err != nil {
				return err
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.root, "root", ".", "Project root containing node_modules")
	cmd.PersistentFlags().StringVar(&opts.table, "table", branding.TableFile(), "Substitution table file (relative to --root)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log resolution decisions to stderr")

	cmd.AddCommand(
		newResolveCmd(opts),
		newRulesCmd(opts),
		newValidateCmd(opts),
		newDoctorCmd(opts),
		newStubCmd(opts),
		newConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	cmd := newRootCmd(afero.NewOsFs())
	if err := cmd.Execute(); err != nil {
		cmd.PrintErrln("Error:", err)
		return err
	}
	return nil
}
