package tui

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/thruflo/lightcycle/internal/lights"
)

// Box drawing characters (Unicode)
const (
	BoxTopLeft     = "┌"
	BoxTopRight    = "┐"
	BoxBottomLeft  = "└"
	BoxBottomRight = "┘"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// StripANSI removes escape sequences from s.
func StripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

// VisualWidth returns the number of terminal columns s occupies, ignoring
// escape sequences.
func VisualWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// PadRight pads s with spaces to width visible columns. Strings that are
// already wide enough are returned unchanged.
func PadRight(s string, width int) string {
	if w := VisualWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// BoxWithContent draws a box around the given content lines, sized to the
// widest line.
func BoxWithContent(content []string) []string {
	inner := 0
	for _, line := range content {
		inner = max(inner, VisualWidth(line))
	}

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, BoxTopLeft+strings.Repeat(BoxHorizontal, inner+2)+BoxTopRight)
	for _, line := range content {
		lines = append(lines, BoxVertical+" "+PadRight(line, inner)+" "+BoxVertical)
	}
	lines = append(lines, BoxBottomLeft+strings.Repeat(BoxHorizontal, inner+2)+BoxBottomRight)
	return lines
}

// Style wraps s in the given escape codes followed by a reset.
func Style(s string, codes ...string) string {
	if len(codes) == 0 {
		return s
	}
	return strings.Join(codes, "") + s + EscReset
}

// ColorEscape returns the foreground escape for a bulb colour.
func ColorEscape(c lights.Color) string {
	switch c {
	case lights.Red:
		return EscRed
	case lights.Yellow:
		return EscYellow
	case lights.Green:
		return EscGreen
	default:
		return ""
	}
}

// Pattern renders the light at p as three characters in green, yellow, red
// order, like lights.BulbSet.Pattern. With color set, lit bulbs are styled
// in their own colour.
func Pattern(s lights.BulbSet, p lights.Position, color bool) string {
	plain := s.Pattern(p)
	if !color {
		return plain
	}

	var sb strings.Builder
	for i, c := range [lights.ColorCount]lights.Color{lights.Green, lights.Yellow, lights.Red} {
		ch := plain[i : i+1]
		if s.Has(p, c) {
			ch = Style(ch, ColorEscape(c))
		}
		sb.WriteString(ch)
	}
	return sb.String()
}
