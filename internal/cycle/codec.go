package cycle

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/thruflo/lightcycle/internal/lights"
)

// Wire layout of a step word.
//
//	TTTT GYR GYR GYR GYR
//	     Bot Lft Rgt Top
const (
	WordSize       = 2  // bytes per step word
	durationShift  = 12 // duration occupies the top nibble
	MaxDuration    = 15 // seconds
	TerminatorWord = uint16(0)
)

// Step is one timed snapshot of the bulbs that are on.
type Step struct {
	Duration int // seconds, 1..15 for decoded steps
	Bulbs    lights.BulbSet
}

// NewStep builds a step, validating the duration.
func NewStep(duration int, bulbs lights.BulbSet) (Step, error) {
	if duration < 1 || duration > MaxDuration {
		return Step{}, fmt.Errorf("step duration %d out of range 1..%d", duration, MaxDuration)
	}
	return Step{Duration: duration, Bulbs: bulbs}, nil
}

// Wait returns how long the step is held.
func (s Step) Wait() time.Duration {
	return time.Duration(s.Duration) * time.Second
}

// Word encodes the step back into its wire representation.
func (s Step) Word() uint16 {
	return uint16(s.Duration&MaxDuration)<<durationShift | s.Bulbs.Bits()
}

// AppendBinary appends the big-endian encoding of the step to b.
func (s Step) AppendBinary(b []byte) ([]byte, error) {
	if s.Duration < 1 || s.Duration > MaxDuration {
		return b, fmt.Errorf("step duration %d out of range 1..%d", s.Duration, MaxDuration)
	}
	w := s.Word()
	return append(b, byte(w>>8), byte(w)), nil
}

// String returns a description like "3s top=G.. right=..R left=..R bottom=G..".
func (s Step) String() string {
	return fmt.Sprintf("%ds %s", s.Duration, s.Bulbs)
}

// Kind classifies the result of decoding one word.
type Kind int

const (
	KindStep       Kind = iota // a valid step
	KindTerminator             // explicit 0x0000 or a zero-duration word
	KindEndOfInput             // the stream ended before a full word was read
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindStep:
		return "step"
	case KindTerminator:
		return "terminator"
	case KindEndOfInput:
		return "end_of_input"
	default:
		return "unknown"
	}
}

// Outcome is the result of decoding one word.
type Outcome struct {
	Kind Kind
	Step Step   // only set for KindStep
	Word uint16 // raw word; zero for KindEndOfInput

	// Degenerate marks a terminator produced by a nonzero word whose
	// duration nibble is zero.
	Degenerate bool
}

// Terminates reports whether the outcome ends the cycle.
func (o Outcome) Terminates() bool {
	return o.Kind != KindStep
}

// DecodeWord decodes a single step word.
func DecodeWord(word uint16) Outcome {
	if word == TerminatorWord {
		return Outcome{Kind: KindTerminator}
	}

	duration := int(word >> durationShift)
	if duration == 0 {
		return Outcome{Kind: KindTerminator, Word: word, Degenerate: true}
	}

	return Outcome{
		Kind: KindStep,
		Word: word,
		Step: Step{
			Duration: duration,
			Bulbs:    lights.BulbSetFromBits(word),
		},
	}
}

// DecodeBytes decodes a big-endian word from its two bytes.
func DecodeBytes(hi, lo byte) Outcome {
	return DecodeWord(uint16(hi)<<8 | uint16(lo))
}

// EncodeSteps returns the wire encoding of steps followed by the terminator.
func EncodeSteps(steps []Step) ([]byte, error) {
	out := make([]byte, 0, (len(steps)+1)*WordSize)
	for i, s := range steps {
		var err error
		out, err = s.AppendBinary(out)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return append(out, 0, 0), nil
}

// Decoder reads successive step words from a stream.
type Decoder struct {
	r   io.Reader
	buf [WordSize]byte
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next reads and decodes the next word. A stream that is exhausted before a
// full word is available yields KindEndOfInput with a nil error; any other
// read failure is returned as an error.
func (d *Decoder) Next() (Outcome, error) {
	_, err := io.ReadFull(d.r, d.buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Outcome{Kind: KindEndOfInput}, nil
		}
		return Outcome{}, fmt.Errorf("failed to read step word: %w", err)
	}
	return DecodeBytes(d.buf[0], d.buf[1]), nil
}
