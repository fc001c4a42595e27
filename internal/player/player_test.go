package player

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/lights"
	"github.com/thruflo/lightcycle/internal/logging"
	"github.com/thruflo/lightcycle/internal/testutil"
	"github.com/thruflo/lightcycle/internal/tui"
)

// recordingScreen records the calls made by the player.
type recordingScreen struct {
	calls      []string
	applied    []lights.BulbSet
	repaintErr error
}

func (s *recordingScreen) Apply(b lights.BulbSet) {
	s.calls = append(s.calls, "apply")
	s.applied = append(s.applied, b)
}

func (s *recordingScreen) Paint() error {
	s.calls = append(s.calls, "paint")
	return nil
}

func (s *recordingScreen) Repaint() error {
	s.calls = append(s.calls, "repaint")
	return s.repaintErr
}

// waitN returns a WaitFunc that records durations and cancels after n waits.
func waitN(n int, cancel context.CancelFunc, got *[]time.Duration) WaitFunc {
	return func(ctx context.Context, d time.Duration) error {
		*got = append(*got, d)
		if len(*got) >= n {
			cancel()
		}
		return ctx.Err()
	}
}

func buildCycle(t *testing.T, words ...uint16) *cycle.Store {
	t.Helper()
	store, err := cycle.Build(bytes.NewReader(testutil.Words(words...)),
		cycle.WithLogger(logging.NewWithWriter(&bytes.Buffer{})))
	require.NoError(t, err)
	return store
}

func TestRun_OrderOfOperations(t *testing.T) {
	t.Parallel()

	store := buildCycle(t, testutil.SampleCycleWords...)
	screen := &recordingScreen{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var waits []time.Duration
	p := New(Options{Cycle: store, Screen: screen, Wait: waitN(6, cancel, &waits)})
	assert.Equal(t, StateInit, p.State())

	res := p.Run(ctx)

	assert.Equal(t, ExitReasonCancelled, res.Reason)
	assert.ErrorIs(t, res.Error, context.Canceled)
	assert.Equal(t, 5, res.Steps)
	assert.Equal(t, StateStopped, p.State())

	assert.Equal(t, []time.Duration{
		5 * time.Second, 2 * time.Second, 5 * time.Second, 2 * time.Second,
		5 * time.Second, 2 * time.Second,
	}, waits)

	want := []string{"paint"}
	for range waits {
		want = append(want, "apply", "repaint")
	}
	assert.Equal(t, want, screen.calls)

	// Playback wrapped around: the fifth applied state is the first again.
	require.Len(t, screen.applied, 6)
	assert.Equal(t, screen.applied[0], screen.applied[4])
	assert.Equal(t, 1, store.Index())
}

func TestRun_SingleStepCycleStaysPut(t *testing.T) {
	t.Parallel()

	store := buildCycle(t, 0x1049, testutil.Terminator)
	screen := &recordingScreen{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var waits []time.Duration
	res := New(Options{Cycle: store, Screen: screen, Wait: waitN(3, cancel, &waits)}).Run(ctx)

	assert.Equal(t, ExitReasonCancelled, res.Reason)
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, waits)
	assert.Equal(t, 0, store.Index())
}

func TestRun_RepaintError(t *testing.T) {
	t.Parallel()

	store := buildCycle(t, testutil.SampleCycleWords...)
	boom := errors.New("broken pipe")
	screen := &recordingScreen{repaintErr: boom}

	p := New(Options{Cycle: store, Screen: screen, Wait: func(context.Context, time.Duration) error {
		t.Fatal("wait must not be reached")
		return nil
	}})
	res := p.Run(context.Background())

	assert.Equal(t, ExitReasonRenderError, res.Reason)
	assert.ErrorIs(t, res.Error, boom)
	assert.Zero(t, res.Steps)
	assert.Equal(t, 0, store.Index())
}

func TestRun_WithRenderer(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r, err := tui.NewRenderer(&out, tui.Display{Width: 80, Height: 30, Interactive: true})
	require.NoError(t, err)

	store := buildCycle(t, 0x1249, 0x2924, testutil.Terminator)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var waits []time.Duration
	var logs bytes.Buffer
	logger := logging.NewWithWriter(&logs)
	logger.SetLevel(logging.LevelDebug)

	res := New(Options{Cycle: store, Screen: r, Logger: logger, Wait: waitN(2, cancel, &waits)}).Run(ctx)
	assert.Equal(t, ExitReasonCancelled, res.Reason)

	s := out.String()
	assert.Equal(t, 2, strings.Count(s, tui.CursorUp(tui.FrameRows)+tui.CarriageReturn))
	assert.Equal(t, 3*tui.FrameRows, strings.Count(s, "\n"))
	assert.Contains(t, s, tui.GlyphRed)
	assert.Contains(t, logs.String(), "DEBUG: holding step")
}

func TestSleep(t *testing.T) {
	t.Parallel()

	ctx, cancel := testutil.ContextWithTestDeadline(t, 5*time.Second)
	defer cancel()
	assert.NoError(t, Sleep(ctx, time.Millisecond))

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	start := time.Now()
	assert.ErrorIs(t, Sleep(cancelled, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "init", StateInit.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(9).String())
	assert.Equal(t, "cancelled", ExitReasonCancelled.String())
	assert.Equal(t, "render error", ExitReasonRenderError.String())
	assert.Equal(t, "unknown", ExitReason(9).String())
}
