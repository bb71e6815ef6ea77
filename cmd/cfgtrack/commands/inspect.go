package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <record-key>",
		Short: "Print a stored record snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			cwd, err := c.getwd()
			if err != nil {
				return zerr.Wrap(err, "failed to determine working directory")
			}

			snap, err := c.app.Inspect(cwd, args[0])
			if err != nil {
				return err
			}

			return writeDocument(cmd.OutOrStdout(), format, snap)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format (json, yaml or text)")

	return cmd
}
