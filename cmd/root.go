package cmd

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/HidayetHidayetov/auto-testify/pkg/cfg"
	"github.com/HidayetHidayetov/auto-testify/pkg/environment"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
)

// NewRootCommand returns the root command with all subcommands attached
func NewRootCommand(ctx context.Context, fs afero.Fs, env *environment.Environment, config *cfg.Config, logger *logging.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   "autotestify",
		Short: "Generate model test files.",
		Long: `autotestify reads the fillable fields, unique fields, soft-delete flag and
validation rules of a data model and writes a test file covering create,
retrieve, update, delete, uniqueness and every validation rule it recognises.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(NewMakeTestModelCommand(ctx, fs, config, logger))
	rootCmd.AddCommand(NewInitCommand(fs, env, logger))
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
