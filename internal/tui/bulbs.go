package tui

import (
	"fmt"
	"strings"

	"github.com/thruflo/lightcycle/internal/lights"
)

// Slot glyphs. Each is exactly GlyphLen bytes: colour escape, glyph, reset.
const (
	GlyphOff    = EscReset + "o" + EscReset
	GlyphRed    = EscRed + "@" + EscReset
	GlyphYellow = EscYellow + "@" + EscReset
	GlyphGreen  = EscGreen + "@" + EscReset

	GlyphLen = 11
)

// RowsPerLight is the number of text rows in every light template.
const RowsPerLight = 6

// slotMarker stands in for a bulb slot in the templates below.
const slotMarker = "{}"

// Templates are laid out so that stacking all four reproduces a crossing:
// top above, right beside it, left below that, bottom last.
var templates = [lights.PositionCount]string{
	lights.Top: "" +
		"             |\n" +
		"            ---\n" +
		"           | {} |\n" +
		"           | {} |\n" +
		"           | {} |\n" +
		"            ---\n",

	lights.Right: "" +
		"                                -------\n" +
		"                               | {} {} {} |--\n" +
		"                                -------\n" +
		"\n" +
		"\n" +
		"\n",

	lights.Left: "" +
		"\n" +
		"\n" +
		"\n" +
		"   -------\n" +
		"--| {} {} {} |\n" +
		"   -------\n",

	lights.Bottom: "" +
		"                           ---\n" +
		"                          | {} |\n" +
		"                          | {} |\n" +
		"                          | {} |\n" +
		"                           ---\n" +
		"                            |\n",
}

// slotOrder returns the colours of a light's slots in reading order.
// Top and left read green to red; right and bottom read red to green.
func slotOrder(p lights.Position) [lights.ColorCount]lights.Color {
	switch p {
	case lights.Top, lights.Left:
		return [lights.ColorCount]lights.Color{lights.Green, lights.Yellow, lights.Red}
	default:
		return [lights.ColorCount]lights.Color{lights.Red, lights.Yellow, lights.Green}
	}
}

// Glyph returns the slot glyph for a bulb of colour c.
func Glyph(c lights.Color, on bool) string {
	if !on {
		return GlyphOff
	}
	switch c {
	case lights.Red:
		return GlyphRed
	case lights.Yellow:
		return GlyphYellow
	case lights.Green:
		return GlyphGreen
	default:
		panic(fmt.Sprintf("tui: invalid color %d", c))
	}
}

// BulbBuffer is the text rendering of one light. Slot offsets are fixed
// when the buffer is built; updates overwrite a single slot in place.
type BulbBuffer struct {
	pos     lights.Position
	buf     []byte
	offsets [lights.ColorCount]int // indexed by colour
}

// NewBulbBuffer builds the all-off rendering of the light at p.
// It panics if the light's template is malformed.
func NewBulbBuffer(p lights.Position) *BulbBuffer {
	if !p.Valid() {
		panic(fmt.Sprintf("tui: invalid light position %d", p))
	}

	tmpl := templates[p]
	if rows := strings.Count(tmpl, "\n"); rows != RowsPerLight {
		panic(fmt.Sprintf("tui: %s template has %d rows, want %d", p, rows, RowsPerLight))
	}
	pieces := strings.Split(tmpl, slotMarker)
	if len(pieces) != lights.ColorCount+1 {
		panic(fmt.Sprintf("tui: %s template has %d slots, want %d", p, len(pieces)-1, lights.ColorCount))
	}

	b := &BulbBuffer{pos: p}
	order := slotOrder(p)
	for i, piece := range pieces {
		b.buf = append(b.buf, piece...)
		if i < len(order) {
			b.offsets[order[i]] = len(b.buf)
			b.buf = append(b.buf, GlyphOff...)
		}
	}
	return b
}

// Position returns the light this buffer renders.
func (b *BulbBuffer) Position() lights.Position {
	return b.pos
}

// Set switches the bulb of colour c on or off, leaving every other slot
// untouched.
func (b *BulbBuffer) Set(c lights.Color, on bool) {
	glyph := Glyph(c, on)
	off := b.offsets[c]
	if off <= 0 || off+GlyphLen > len(b.buf) || b.buf[off] != '\033' {
		panic(fmt.Sprintf("tui: %s slot for %s not found at offset %d", b.pos, c, off))
	}
	copy(b.buf[off:off+GlyphLen], glyph)
}

// Bytes returns the rendering. The slice is owned by the buffer.
func (b *BulbBuffer) Bytes() []byte {
	return b.buf
}

// String returns the rendering.
func (b *BulbBuffer) String() string {
	return string(b.buf)
}

// Width returns the widest visible row in terminal columns.
func (b *BulbBuffer) Width() int {
	widest := 0
	for _, line := range strings.Split(b.String(), "\n") {
		widest = max(widest, VisualWidth(line))
	}
	return widest
}
