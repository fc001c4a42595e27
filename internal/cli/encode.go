package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thruflo/lightcycle/internal/config"
	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/logging"
)

// ErrOutputIsTerminal is returned when encode would write binary data to a
// terminal.
var ErrOutputIsTerminal = errors.New("refusing to write binary data to a terminal (use --output or --force)")

var (
	encodeOutput string
	encodeForce  bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <cycle.yaml>",
	Short: "Encode a YAML cycle file into the binary cycle format",
	Long: `Encode reads a YAML cycle file and writes the binary cycle, including
the terminating 0x0000 word, to stdout or to the file given by --output.

Example cycle file:
  name: crossing
  steps:
    - duration: 5
      lights:
        top: [green]
        bottom: [green]
        left: [red]
        right: [red]
    - duration: 2
      lights:
        top: [yellow]
        bottom: [yellow]
        left: [red]
        right: [red]`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "write the binary cycle to this file")
	encodeCmd.Flags().BoolVarP(&encodeForce, "force", "f", false, "write binary data even if stdout is a terminal")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	cf, err := config.LoadCycleFile(args[0])
	if err != nil {
		return err
	}

	steps, err := cf.CycleSteps()
	if err != nil {
		return err
	}

	data, err := cycle.EncodeSteps(steps)
	if err != nil {
		return err
	}

	if encodeOutput != "" {
		if err := os.WriteFile(encodeOutput, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", encodeOutput, err)
		}
		logging.Debug("wrote cycle", "path", encodeOutput, "steps", len(steps), "bytes", len(data))
		return nil
	}

	return writeBinary(cmd.OutOrStdout(), data, encodeForce)
}

func writeBinary(w io.Writer, data []byte, force bool) error {
	if !force && isTerminalWriter(w) {
		return ErrOutputIsTerminal
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write cycle: %w", err)
	}
	return nil
}
