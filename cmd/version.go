package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HidayetHidayetov/auto-testify/pkg/version"
)

// NewVersionCommand creates the 'version' command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "autotestify %s\n", version.String())
		},
	}
}
