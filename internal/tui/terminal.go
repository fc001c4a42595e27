package tui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Display describes the output surface a Renderer paints on.
type Display struct {
	Width       int
	Height      int
	Interactive bool // a real terminal rather than a pipe or file
}

// String returns a description like "80x24 terminal".
func (d Display) String() string {
	kind := "non-terminal"
	if d.Interactive {
		kind = "terminal"
	}
	return fmt.Sprintf("%dx%d %s", d.Width, d.Height, kind)
}

// ProbeDisplay queries f for its terminal capability. A file that is not a
// terminal, or whose size cannot be read, reports zero dimensions.
func ProbeDisplay(f *os.File) Display {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return Display{}
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		return Display{Interactive: true}
	}
	return Display{Width: width, Height: height, Interactive: true}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ANSI escape sequences.
//
// The colour escapes used inside bulb slots are written with two-digit
// parameters so that every slot glyph has the same byte length.
const (
	EscReset  = "\033[00m"
	EscRed    = "\033[31m"
	EscGreen  = "\033[32m"
	EscYellow = "\033[33m"

	CursorHide     = "\033[?25l"
	CursorShow     = "\033[?25h"
	CarriageReturn = "\r"
)

// CursorUp returns an ANSI escape sequence to move the cursor up n lines.
func CursorUp(n int) string {
	return fmt.Sprintf("\033[%dA", n)
}

// Terminal writes escape sequences to an output stream.
type Terminal struct {
	out io.Writer
}

// NewTerminal creates a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

// Write implements io.Writer.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	fmt.Fprint(t.out, CursorHide)
}

// ShowCursor shows the cursor.
func (t *Terminal) ShowCursor() {
	fmt.Fprint(t.out, CursorShow)
}
