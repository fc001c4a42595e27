package tui

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/thruflo/lightcycle/internal/lights"
)

// Frame geometry.
const (
	MinWidth  = 64
	FrameRows = RowsPerLight * lights.PositionCount
	MinHeight = FrameRows
)

var (
	// ErrNotTerminal is returned when the output is piped or redirected.
	ErrNotTerminal = errors.New("output must go to a terminal")
	// ErrTooNarrow is returned when the display has fewer than MinWidth columns.
	ErrTooNarrow = errors.New("terminal is not wide enough to display the visualization")
	// ErrTooShort is returned when the display has fewer than MinHeight rows.
	ErrTooShort = errors.New("terminal is not tall enough to display the visualization")
)

// CheckDisplay verifies that d can hold a full frame.
func CheckDisplay(d Display) error {
	switch {
	case !d.Interactive:
		return fmt.Errorf("%w: the output may have been piped or redirected", ErrNotTerminal)
	case d.Width < MinWidth:
		return fmt.Errorf("%w: minimum width is %d, got %d", ErrTooNarrow, MinWidth, d.Width)
	case d.Height < MinHeight:
		return fmt.Errorf("%w: minimum height is %d, got %d", ErrTooShort, MinHeight, d.Height)
	}
	return nil
}

// Renderer owns the four light buffers and paints them as one frame.
type Renderer struct {
	out     io.Writer
	buffers [lights.PositionCount]*BulbBuffer
	frame   bytes.Buffer
}

// NewRenderer creates a Renderer with every bulb off. It fails if the display
// cannot hold a frame. Nothing is written until Paint is called.
func NewRenderer(out io.Writer, d Display) (*Renderer, error) {
	if err := CheckDisplay(d); err != nil {
		return nil, err
	}

	r := &Renderer{out: out}
	for _, p := range lights.Positions {
		b := NewBulbBuffer(p)
		if w := b.Width(); w > MinWidth {
			panic(fmt.Sprintf("tui: %s template is %d columns wide, frame limit is %d", p, w, MinWidth))
		}
		r.buffers[p] = b
	}
	return r, nil
}

// SetBulb switches one bulb. Other bulbs are unaffected.
func (r *Renderer) SetBulb(p lights.Position, c lights.Color, on bool) {
	r.buffers[p].Set(c, on)
}

// Apply sets every bulb to its state in s.
func (r *Renderer) Apply(s lights.BulbSet) {
	for _, p := range lights.Positions {
		for _, c := range lights.Colors {
			r.SetBulb(p, c, s.Has(p, c))
		}
	}
}

// Frame returns the current rendering of all four lights.
func (r *Renderer) Frame() string {
	var buf bytes.Buffer
	for _, b := range r.buffers {
		buf.Write(b.Bytes())
	}
	return buf.String()
}

// Paint writes the frame at the cursor position.
func (r *Renderer) Paint() error {
	r.frame.Reset()
	r.appendFrame()
	return r.flush()
}

// Repaint moves the cursor back to the top of the previously painted frame
// and paints over it. It relies on every frame having FrameRows rows.
func (r *Renderer) Repaint() error {
	r.frame.Reset()
	r.frame.WriteString(CursorUp(FrameRows))
	r.frame.WriteString(CarriageReturn)
	r.appendFrame()
	return r.flush()
}

func (r *Renderer) appendFrame() {
	for _, b := range r.buffers {
		r.frame.Write(b.Bytes())
	}
}

func (r *Renderer) flush() error {
	if _, err := r.out.Write(r.frame.Bytes()); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}
