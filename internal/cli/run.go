package cli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/waoai/confidis/internal/domain"
	"github.com/waoai/confidis/internal/engine"
	"github.com/waoai/confidis/internal/interp"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
}

// NewRunCommand builds an interactive REPL over a fresh engine: every
// line typed is one protocol command, executed immediately against the
// same engine instance until EOF.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive resolver session",
		Long: `Start an interactive resolver session on a single fresh engine.

Each line read from stdin is one protocol command (CONFIGURE, BELIEVE, SET,
GET ANSWER TO, GET SOURCE, GET ANSWERS TO, or TEST EQUALITY). Mutations
produce no output; reporting commands print their result on success and an
error line on failure. The session ends at EOF.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func runSession(opts *RunOptions, in io.Reader, out io.Writer) error {
	logger := opts.Logger
	eng := engine.New()
	logger.Info("engine started", zap.String("instance_id", eng.ID().String()))

	if opts.ParamsFile != "" {
		if err := applyParamsFile(eng, opts.ParamsFile); err != nil {
			return WrapExitError(ExitUsageError, "failed to load params file", err)
		}
	}

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err := eng.Execute(line)
		fields := []zap.Field{
			zap.Int("line", lineNo),
			zap.String("command_hash", shortHash(line)),
		}
		if err != nil {
			logger.Warn("command failed", append(fields, zap.Error(err))...)
			fmt.Fprintf(out, "! %s\n", describeError(err))
			continue
		}
		logger.Debug("command executed", fields...)
		if result != nil {
			fmt.Fprintf(out, "> %s\n", interp.Format(result))
		}
	}

	logger.Info("engine stopped")
	return scanner.Err()
}

// describeError renders a *domain.ResolverError the way a host displays a
// protocol failure: its kind and message, not a Go error string.
func describeError(err error) string {
	if re, ok := err.(*domain.ResolverError); ok {
		return fmt.Sprintf("%s: %s", re.Kind, re.Message)
	}
	return err.Error()
}

// shortHash gives each logged command a short, stable correlation token
// without putting the full (potentially sensitive) command line into the
// log at info level.
func shortHash(line string) string {
	sum := blake3.Sum256([]byte(line))
	return hex.EncodeToString(sum[:8])
}
