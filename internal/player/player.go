// Package player drives playback of a decoded cycle: it applies each step's
// bulb states to the renderer, repaints, holds the step for its duration and
// advances, wrapping forever.
//
// The player owns the only blocking point of the program. Playback has no
// natural end; it stops when its context is cancelled or when the renderer
// can no longer write.
package player

import (
	"context"
	"time"

	"github.com/thruflo/lightcycle/internal/cycle"
	"github.com/thruflo/lightcycle/internal/lights"
	"github.com/thruflo/lightcycle/internal/logging"
)

// Cycle is the playback source.
type Cycle interface {
	Current() cycle.Step
	Advance() int
	Index() int
}

// Screen is the playback target.
type Screen interface {
	Apply(lights.BulbSet)
	Paint() error
	Repaint() error
}

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// State is the driver state.
type State int

const (
	StateInit State = iota
	StateRunning
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ExitReason indicates why playback stopped.
type ExitReason int

const (
	ExitReasonCancelled   ExitReason = iota // context cancelled
	ExitReasonRenderError                   // writing a frame failed
)

// String returns the string representation of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonCancelled:
		return "cancelled"
	case ExitReasonRenderError:
		return "render error"
	default:
		return "unknown"
	}
}

// Result is returned by Run.
type Result struct {
	Reason ExitReason
	Steps  int // steps fully held and advanced past
	Error  error
}

// Options configures a Player.
type Options struct {
	Cycle  Cycle
	Screen Screen
	Logger *logging.Logger // Optional: defaults to the package logger
	Wait   WaitFunc        // Optional: defaults to a timer-based wait
}

// Player runs the playback loop.
type Player struct {
	cycle  Cycle
	screen Screen
	logger *logging.Logger
	wait   WaitFunc
	state  State
}

// New creates a Player. Both the cycle and the screen must already be
// initialized; the player never builds them itself.
func New(opts Options) *Player {
	p := &Player{
		cycle:  opts.Cycle,
		screen: opts.Screen,
		logger: opts.Logger,
		wait:   opts.Wait,
		state:  StateInit,
	}
	if p.logger == nil {
		p.logger = logging.Default()
	}
	if p.wait == nil {
		p.wait = Sleep
	}
	return p
}

// State returns the driver state.
func (p *Player) State() State {
	return p.state
}

// Run paints the initial frame and then plays the cycle until ctx is done.
func (p *Player) Run(ctx context.Context) Result {
	if err := p.screen.Paint(); err != nil {
		p.state = StateStopped
		return Result{Reason: ExitReasonRenderError, Error: err}
	}
	p.state = StateRunning

	steps := 0
	for {
		step := p.cycle.Current()
		p.screen.Apply(step.Bulbs)
		if err := p.screen.Repaint(); err != nil {
			p.state = StateStopped
			return Result{Reason: ExitReasonRenderError, Steps: steps, Error: err}
		}

		p.logger.Debug("holding step", "step", p.cycle.Index(), "duration", step.Duration, "bulbs", step.Bulbs.String())

		if err := p.wait(ctx, step.Wait()); err != nil {
			p.state = StateStopped
			return Result{Reason: ExitReasonCancelled, Steps: steps, Error: err}
		}

		p.cycle.Advance()
		steps++
	}
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
