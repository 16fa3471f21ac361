package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waoai/confidis/internal/engine"
	"github.com/waoai/confidis/internal/interp"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Verify bool
}

// NewReplayCommand builds the replay command: it runs every command in a
// script file against a fresh engine and prints the transcript of
// reporting commands, the same format the engine's own golden-file tests
// assert against.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Run a command script and print its transcript",
		Long: `Run every command in a script file, one per line, against a fresh engine
and print the transcript of reporting commands.

With --verify, the script is run twice against two independent engines and
the two transcripts are compared; a mismatch means the engine is not
deterministic for that script, and the command exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "run twice and verify determinism")

	return cmd
}

func runReplay(opts *ReplayOptions, path string, out io.Writer) error {
	lines, err := readScript(path)
	if err != nil {
		return WrapExitError(ExitUsageError, "failed to read script", err)
	}

	transcript, err := playScript(lines, opts.ParamsFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "script execution failed", err)
	}

	if opts.Verify {
		second, err := playScript(lines, opts.ParamsFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "script execution failed on second run", err)
		}
		if strings.Join(transcript, "\n") != strings.Join(second, "\n") {
			opts.Logger.Error("non-deterministic replay detected")
			return NewExitError(ExitCommandError, "replay produced different output on a second run")
		}
		opts.Logger.Info("replay verified deterministic", zap.Int("lines", len(lines)))
	}

	for _, line := range transcript {
		fmt.Fprintln(out, line)
	}
	return nil
}

func readScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// playScript runs every line of a script against one fresh engine and
// returns the formatted transcript of reporting commands, in order. A
// failing command aborts the replay with its error.
func playScript(lines []string, paramsFile string) ([]string, error) {
	eng := engine.New()
	if paramsFile != "" {
		if err := applyParamsFile(eng, paramsFile); err != nil {
			return nil, err
		}
	}
	var out []string
	for _, line := range lines {
		result, err := eng.Execute(line)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", line, err)
		}
		if result != nil {
			out = append(out, "> "+interp.Format(result))
		}
	}
	return out, nil
}
