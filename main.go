package main

import (
	"os"

	"github.com/CristiGvl/cpuchart/internal/config"
	"github.com/CristiGvl/cpuchart/internal/cpu"
	"github.com/CristiGvl/cpuchart/internal/logger"
	"github.com/CristiGvl/cpuchart/internal/memory"
	"github.com/CristiGvl/cpuchart/internal/pipeline"
	"github.com/CristiGvl/cpuchart/internal/platform"
	"github.com/CristiGvl/cpuchart/internal/viewer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command. It takes no arguments or flags of its own.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpuchart",
		Short: "Chart CPU usage and open it in the default image viewer",
		Long: `cpuchart samples global CPU usage 15 times at 500ms intervals, writes the
series to cpu_usage.svg and cpu_usage.png in the current directory and opens
the PNG with the system image viewer.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := logger.New(zapcore.WarnLevel)
	defer log.Sync()

	// Validate platform support
	if err := platform.ValidateSupport(); err != nil {
		log.Fatal("Platform validation failed", zap.Error(err))
	}

	p := pipeline.New(config.Default(), pipeline.Options{
		CPU:    cpu.NewReader(log),
		Memory: memory.NewReader(log),
		Opener: viewer.NewOpener(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: log,
	})

	if _, err := p.Run(cmd.Context()); err != nil {
		log.Fatal("cpuchart aborted", zap.Error(err))
	}

	return nil
}
