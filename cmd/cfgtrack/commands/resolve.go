package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cfgtrack/internal/app"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	var (
		opts   app.ResolveOptions
		format string
	)

	cmd := &cobra.Command{
		Use:   "resolve [flags] [file-name...]",
		Short: "Find the nearest config and record its invalidations",
		Long: "Searches from the working directory (or --from) up to the project root for the first of the\n" +
			"given file names, prints the result with everything that would invalidate it, and stores\n" +
			"the record snapshot in the project cache.",
		Example: "  cfgtrack resolve .babelrc babel.config.json\n" +
			"  cfgtrack resolve --package-key babel .babelrc --format yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.PackageKey == "" {
				return cmd.Help()
			}
			if err := validateFormat(format); err != nil {
				return err
			}

			cwd, err := c.getwd()
			if err != nil {
				return zerr.Wrap(err, "failed to determine working directory")
			}

			res, err := c.app.Resolve(cmd.Context(), cwd, args, opts)
			if err != nil {
				return err
			}

			return writeDocument(cmd.OutOrStdout(), format, newResolveView(res))
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "Directory to start searching from (defaults to the working directory)")
	cmd.Flags().StringVar(&opts.Key, "key", "", "Record key to store the snapshot under (derived from the request by default)")
	cmd.Flags().StringVar(&opts.PackageKey, "package-key", "", "Return this key of the nearest "+
		domain.PackageManifestName+" when present")
	cmd.Flags().BoolVar(&opts.Exclude, "exclude", false, "Do not record the located file as an included file")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Return file contents as text instead of parsing them")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "Log how long each resolution step takes")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format (json, yaml or text)")

	return cmd
}

func newResolveView(res *app.Resolution) resolveView {
	view := resolveView{Record: res.Snapshot}
	if res.Result != nil {
		view.Found = true
		view.Result = &resultView{FilePath: res.Result.FilePath, Contents: res.Result.Contents}
	}
	return view
}
