package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/HidayetHidayetov/auto-testify/cmd"
	"github.com/HidayetHidayetov/auto-testify/pkg/cfg"
	"github.com/HidayetHidayetov/auto-testify/pkg/environment"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
)

func main() {
	fs := afero.NewOsFs()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, fs))
}

func run(ctx context.Context, fs afero.Fs) int {
	env, err := environment.NewEnvironment(fs, nil)
	if err != nil {
		logging.New(false).Error("Failed to set up environment", "error", err)
		return 1
	}
	logger := logging.New(env.IsDebug())

	cfgFile, err := cfg.FindConfiguration(fs, env, logger)
	if err != nil {
		logger.Error("Error occurred finding configuration", "error", err)
		return 1
	}

	config, err := cfg.LoadConfiguration(fs, cfgFile, env, logger)
	if err != nil {
		logger.Error("Error occurred loading configuration", "error", err)
		return 1
	}
	if config.Debug && !env.IsDebug() {
		logger = logging.New(true)
	}

	rootCmd := cmd.NewRootCommand(ctx, fs, env, config, logger)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		return 1
	}
	return 0
}
