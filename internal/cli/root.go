package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/logging"
	"github.com/thruflo/lightcycle/internal/player"
	"github.com/thruflo/lightcycle/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

// LogLevelEnv names the environment variable that sets the log level.
const LogLevelEnv = "LIGHTCYCLE_LOG_LEVEL"

var (
	// ErrInputIsTerminal is returned when binary input is expected but stdin
	// is an interactive terminal.
	ErrInputIsTerminal = errors.New("expected binary data on stdin (from a pipe or file), but it is a terminal")
	// ErrInterrupted is returned when playback is stopped by a signal.
	ErrInterrupted = errors.New("interrupted")
)

// probeDisplay reports the display capability of an output stream.
// It can be overridden in tests.
var probeDisplay = func(w io.Writer) tui.Display {
	if f, ok := w.(*os.File); ok {
		return tui.ProbeDisplay(f)
	}
	return tui.Display{}
}

// playWait holds each step during playback. It can be overridden in tests.
var playWait player.WaitFunc = player.Sleep

var rootCmd = &cobra.Command{
	Use:   "lightcycle",
	Short: "Play a binary traffic-light cycle in the terminal",
	Long: `Lightcycle reads a binary traffic-light cycle on stdin and plays it
forever on a terminal, holding each step for its duration.

Each step is a big-endian 16-bit word: a 4-bit duration in seconds followed
by green/yellow/red bits for the bottom, left, right and top lights. A 0x0000
word ends the cycle; at most 19 steps may precede it.

Example:
  printf '\x12\x49\x00\x00' | lightcycle
  lightcycle encode cycle.yaml | lightcycle`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("lightcycle version {{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	configureLogging(os.Getenv(LogLevelEnv))
	return rootCmd.Execute()
}

func configureLogging(level string) {
	if level == "" {
		return
	}
	l, err := logging.ParseLevel(level)
	if err != nil {
		logging.Warn("ignoring log level", "env", LogLevelEnv, "error", err)
		return
	}
	logging.SetLevel(l)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := cmd.InOrStdin()
	if isTerminalReader(in) {
		return ErrInputIsTerminal
	}

	out := cmd.OutOrStdout()
	return play(ctx, in, out, probeDisplay(out))
}

// play builds the cycle and the renderer and runs playback until ctx is done.
func play(ctx context.Context, in io.Reader, out io.Writer, display tui.Display) error {
	logger := logging.Default()

	store, err := cycle.Build(in, cycle.WithLogger(logger))
	if err != nil {
		return err
	}

	renderer, err := tui.NewRenderer(out, display)
	if err != nil {
		return err
	}

	term := tui.NewTerminal(out)
	term.HideCursor()
	defer term.ShowCursor()

	logger.Info("starting playback", "steps", store.Len(), "display", display.String())

	res := player.New(player.Options{
		Cycle:  store,
		Screen: renderer,
		Logger: logger,
		Wait:   playWait,
	}).Run(ctx)

	logger.Info("playback stopped", "reason", res.Reason.String(), "steps", res.Steps)

	switch res.Reason {
	case player.ExitReasonRenderError:
		return res.Error
	case player.ExitReasonCancelled:
		return fmt.Errorf("%w after %d steps", ErrInterrupted, res.Steps)
	}
	return nil
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && tui.IsInteractive(f)
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsInteractive(f)
}
