package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thruflo/lightcycle/internal/config"
	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/lights"
	"github.com/thruflo/lightcycle/internal/logging"
	"github.com/thruflo/lightcycle/internal/tui"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Decode a binary cycle and print its steps",
	Long: `Inspect decodes a binary cycle from the given file, or from stdin when no
file is given, and prints its steps without playing them.

Formats:
  table  one row per step with the word, duration and each light (default)
  yaml   a cycle file that "lightcycle encode" accepts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "table", "output format: table or yaml")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFormat != "table" && inspectFormat != "yaml" {
		return fmt.Errorf("unknown format %q: use table or yaml", inspectFormat)
	}

	var in io.Reader
	name := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open cycle: %w", err)
		}
		defer f.Close()
		in = f
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	} else {
		in = cmd.InOrStdin()
		if isTerminalReader(in) {
			return ErrInputIsTerminal
		}
	}

	store, err := cycle.Build(in, cycle.WithLogger(logging.Default()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectFormat == "yaml" {
		data, err := config.FromSteps(name, store.Steps()).Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	for _, line := range stepTable(store.Steps(), isTerminalWriter(out)) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// stepTable lays out steps as a boxed table. Each light shows its green,
// yellow and red bulbs in that order.
func stepTable(steps []cycle.Step, color bool) []string {
	header := fmt.Sprintf("%-4s %-6s %-4s", "#", "word", "secs")
	for _, p := range lights.Positions {
		header += fmt.Sprintf(" %-6s", p)
	}

	content := []string{header}
	total := 0
	for i, s := range steps {
		row := fmt.Sprintf("%-4d %#06x %-4d", i, s.Word(), s.Duration)
		for _, p := range lights.Positions {
			row += " " + tui.PadRight(tui.Pattern(s.Bulbs, p, color), 6)
		}
		content = append(content, strings.TrimRight(row, " "))
		total += s.Duration
	}
	noun := "steps"
	if len(steps) == 1 {
		noun = "step"
	}
	content = append(content, fmt.Sprintf("%d %s, %ds per cycle", len(steps), noun, total))

	return tui.BoxWithContent(content)
}
