package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/HidayetHidayetov/auto-testify/pkg/cfg"
	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
	"github.com/HidayetHidayetov/auto-testify/pkg/messages"
	"github.com/HidayetHidayetov/auto-testify/pkg/render/plan"
)

// NewMakeTestModelCommand creates the 'make:test-model' command.
func NewMakeTestModelCommand(ctx context.Context, fs afero.Fs, config *cfg.Config, logger *logging.Logger) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:     "make:test-model [model]",
		Aliases: []string{"test-model"},
		Example: "$ autotestify make:test-model User",
		Short:   "Generate a test file for a model",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dryRun {
				return runPlanTestModel(ctx, cmd, fs, config, logger, args[0])
			}
			return runMakeTestModel(ctx, cmd, fs, config, logger, args[0])
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the test plan as YAML instead of writing the file")
	return cmd
}

func runMakeTestModel(ctx context.Context, cmd *cobra.Command, fs afero.Fs, config *cfg.Config, logger *logging.Logger, name string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf(messages.MsgGenerating, name)))

	generator, closeFn, err := NewGenerator(fs, config, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := generator.Generate(ctx, name)
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf(messages.MsgModelNotFound, name)))
		return nil
	case errors.Is(err, domain.ErrAlreadyExists):
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf(messages.MsgAlreadyExists, result.Model, result.Path)))
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "%s %s (%s, %d tests)\n",
		successStyle.Render(messages.MsgCreated),
		result.Path,
		humanize.Bytes(uint64(result.Size)),
		result.Cases,
	)
	return nil
}

func runPlanTestModel(ctx context.Context, cmd *cobra.Command, fs afero.Fs, config *cfg.Config, logger *logging.Logger, name string) error {
	out := cmd.OutOrStdout()

	generator, closeFn, err := NewGenerator(fs, config, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	doc, err := generator.Plan(ctx, name)
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf(messages.MsgModelNotFound, name)))
		return nil
	case err != nil:
		return err
	}

	content, err := plan.New().Render(ctx, doc)
	if err != nil {
		return err
	}
	_, err = out.Write(content)
	return err
}
