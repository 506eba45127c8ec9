package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/HidayetHidayetov/auto-testify/pkg/cfg"
	"github.com/HidayetHidayetov/auto-testify/pkg/environment"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
)

// NewInitCommand creates the 'init' command that writes a default configuration.
func NewInitCommand(fs afero.Fs, env *environment.Environment, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default " + environment.SystemConfigFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFile, err := cfg.GenerateConfiguration(fs, env, logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Configuration:"), configFile)
			return nil
		},
	}
}
