package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI and model library versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "modelshim %s\n", Version)
			fmt.Fprintf(out, "model library %s (%s)\n", o.adapter.Version(), o.adapter.Generation())
			return nil
		},
	}
}
