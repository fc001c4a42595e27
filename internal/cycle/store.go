package cycle

import (
	"errors"
	"fmt"
	"io"

	"github.com/thruflo/lightcycle/internal/logging"
)

// MaxSteps is the number of words, terminator included, a cycle may span.
const MaxSteps = 20

var (
	// ErrEmptyCycle is returned when the first word already terminates the cycle.
	ErrEmptyCycle = errors.New("received an empty cycle")
	// ErrTooManySteps is returned when MaxSteps words are read without a terminator.
	ErrTooManySteps = errors.New("received too many cycle steps")
)

// Store holds a decoded cycle and the playback position within it.
type Store struct {
	steps []Step
	index int
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	logger *logging.Logger
}

// WithLogger sets the logger used for decoding warnings.
func WithLogger(l *logging.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = l
	}
}

// Build reads step words from r until a terminator or the end of the stream
// and returns the resulting cycle.
//
// A truncated stream and a zero-duration word both end the cycle with a
// warning. It fails with ErrEmptyCycle if no step precedes the end, and with
// ErrTooManySteps if MaxSteps steps are read without a terminator.
func Build(r io.Reader, opts ...BuildOption) (*Store, error) {
	o := buildOptions{logger: logging.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	dec := NewDecoder(r)
	steps := make([]Step, 0, MaxSteps)

	for {
		if len(steps) >= MaxSteps {
			return nil, fmt.Errorf("%w: the maximum is %d steps, represented in %d bytes",
				ErrTooManySteps, MaxSteps, MaxSteps*WordSize)
		}

		out, err := dec.Next()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", len(steps), err)
		}

		if out.Kind == KindStep {
			o.logger.Debug("decoded cycle step", "step", len(steps), "word", fmt.Sprintf("%#06x", out.Word), "duration", out.Step.Duration)
			steps = append(steps, out.Step)
			continue
		}

		warnTermination(o.logger, out, len(steps))
		break
	}

	if len(steps) == 0 {
		return nil, ErrEmptyCycle
	}

	return NewStore(steps)
}

func warnTermination(l *logging.Logger, out Outcome, step int) {
	switch {
	case out.Kind == KindEndOfInput:
		l.Warn("input ended before the cycle was properly terminated, continuing", "step", step)
	case out.Degenerate:
		l.Warn("received non-terminating step with zero duration, continuing",
			"step", step, "word", fmt.Sprintf("%#06x", out.Word))
	}
}

// NewStore creates a Store over an already decoded cycle. The slice is copied.
func NewStore(steps []Step) (*Store, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyCycle
	}
	if len(steps) >= MaxSteps {
		return nil, fmt.Errorf("%w: got %d, the maximum is %d", ErrTooManySteps, len(steps), MaxSteps-1)
	}
	return &Store{steps: append([]Step(nil), steps...)}, nil
}

// Current returns the step at the playback position.
func (s *Store) Current() Step {
	return s.steps[s.index]
}

// Advance moves to the next step, wrapping at the end of the cycle, and
// returns the duration in seconds of the step it left.
func (s *Store) Advance() int {
	d := s.steps[s.index].Duration
	s.index = (s.index + 1) % len(s.steps)
	return d
}

// Index returns the playback position.
func (s *Store) Index() int {
	return s.index
}

// Len returns the number of steps in the cycle.
func (s *Store) Len() int {
	return len(s.steps)
}

// Steps returns a copy of the cycle.
func (s *Store) Steps() []Step {
	return append([]Step(nil), s.steps...)
}
