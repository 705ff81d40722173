package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wanderpoints/platshim/internal/resolver"
)

type resolveOptions struct {
	platform string
	from     string
	json     bool
}

// resolveOutput is the --json shape; it mirrors the bundler's resolution
// descriptor plus whether the table served it.
type resolveOutput struct {
	Module      string `json:"module"`
	Platform    string `json:"platform"`
	Type        string `json:"type"`
	FilePath    string `json:"filePath,omitempty"`
	Substituted bool   `json:"substituted"`
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <module>",
		Short: "Resolve a module for a target platform",
		Long: `Resolve a module the way the bundler would for the given platform.

A rule in the substitution table for exactly (platform, module) wins;
everything else goes through node_modules lookup with platform-specific
extensions. Exits non-zero when the module cannot be found.

Examples:
  platshim resolve react-native-maps --platform web
  platshim resolve ./components/Button --platform ios --from src/App.tsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "", "Target platform: web, ios or android (default from config)")
	cmd.Flags().StringVar(&opts.from, "from", "", "File containing the import (default: project root)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the resolution as JSON")
	return cmd
}

func runResolve(cmd *cobra.Command, root *rootOptions, opts *resolveOptions, module string) error {
	p, err := platformFlag(opts.platform)
	if err != nil {
		return err
	}

	r, err := root.newResolver()
	if err != nil {
		return err
	}

	ctx := resolver.Context{}
	if opts.from != "" {
		projectRoot, err := root.projectRoot()
		if err != nil {
			return err
		}
		ctx.OriginPath = opts.from
		if !filepath.IsAbs(ctx.OriginPath) {
			ctx.OriginPath = filepath.Join(projectRoot, ctx.OriginPath)
		}
	}

	res, err := r.Resolve(ctx, module, p)
	if err != nil {
		root.logger.Debug("resolution failed", "module", module, "platform", p, "error", err)
		return err
	}

	substituted := r.Substituted(module, p)
	root.logger.Debug("resolved", "module", module, "platform", p, "type", res.Type, "path", res.FilePath, "substituted", substituted)

	if opts.json {
		out := resolveOutput{
			Module:      module,
			Platform:    string(p),
			Type:        string(res.Type),
			FilePath:    res.FilePath,
			Substituted: substituted,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling resolution: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	source := "default"
	if substituted {
		source = "substituted"
	}
	target := res.FilePath
	if res.Type == resolver.Empty {
		target = "(empty module)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s [%s, %s]\n", module, target, p, source)
	return nil
}
