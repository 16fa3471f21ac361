// Package cli wires the resolver engine to a cobra command tree. This is
// the only layer in the module allowed to import a logging package: every
// command logs its own lifecycle with zap, while internal/engine and
// everything underneath it stay silent and return structured errors
// instead.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waoai/confidis/internal/buildconfig"
	"github.com/waoai/confidis/internal/config"
)

// RootOptions holds flags shared by every subcommand.
type RootOptions struct {
	Verbose    bool
	ParamsFile string
	Logger     *zap.Logger
}

// NewRootCommand builds the confidis command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "confidis",
		Short:         "confidis - a trust-weighted answer resolver",
		Long:          "confidis resolves disagreeing sources into a single answer per question, weighting each source by its track record and letting trusted sources override the crowd.",
		Version:       buildconfig.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			logger, err := newLogger(opts.Verbose)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			opts.Logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug-level logging")
	cmd.PersistentFlags().StringVar(&opts.ParamsFile, "params", "", "YAML file overriding the engine's default weighting parameters")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose || config.LogLevel() == "debug" {
		level.SetLevel(zap.DebugLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	if config.LogFormat() == "json" {
		cfg.Encoding = "json"
	}
	cfg.EncoderConfig.TimeKey = "" // a REPL's own timestamps would just be noise

	return cfg.Build()
}
