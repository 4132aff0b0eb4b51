package realtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/comalice/tickx"
	"github.com/comalice/tickx/internal/ids"
)

var (
	// ErrInvalidConfig reports a Run configuration that cannot make progress.
	ErrInvalidConfig = errors.New("realtime: invalid run configuration")
	// ErrNoApplication is returned when the factory yields no application.
	ErrNoApplication = errors.New("realtime: factory returned no application")
)

// Scheduler is the narrow handle an Application receives at construction.
type Scheduler interface {
	// SetTimeout arms action for Uptime()+delay.
	SetTimeout(delay Tick, action Action)
	// SetTimer arms action every period ticks, measured from each firing.
	SetTimer(period Tick, action Action)
	// Uptime returns the current tick.
	Uptime() Tick
}

// Application is driven by a Runtime. Render runs once per Advance after
// all due timeouts; it may read the store and arm timeouts but must not
// dispatch. The store is frozen while Render runs.
type Application interface {
	Store() *tickx.Store
	Render()
}

// Factory builds the Application for a Runtime.
type Factory func(s Scheduler) (Application, error)

// Config configures a Runtime.
type Config struct {
	Logger   *slog.Logger // default: discard
	Observer Observer     // default: NopObserver
	RunID    string       // default: a fresh ULID
}

// Runtime is a discrete-time scheduler. It owns the clock, the pending
// timeouts and the Application.
//
// A Runtime is not safe for concurrent use.
type Runtime struct {
	uptime  Tick
	pending pendingQueue
	seq     uint64
	app     Application

	runID    string
	logger   *slog.Logger
	observer Observer
}

// NewRuntime creates a runtime and builds its application with factory.
func NewRuntime(factory Factory, cfg Config) (*Runtime, error) {
	if factory == nil {
		return nil, ErrNoApplication
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.RunID == "" {
		cfg.RunID = ids.NewRunID()
	}

	rt := &Runtime{
		runID:    cfg.RunID,
		logger:   cfg.Logger.With("run_id", cfg.RunID),
		observer: cfg.Observer,
	}

	app, err := factory(rt)
	if err != nil {
		return nil, fmt.Errorf("build application: %w", err)
	}
	if app == nil {
		return nil, ErrNoApplication
	}
	rt.app = app
	return rt, nil
}

// Uptime returns the current tick.
func (rt *Runtime) Uptime() Tick {
	return rt.uptime
}

// RunID identifies this runtime in logs.
func (rt *Runtime) RunID() string {
	return rt.runID
}

// Application returns the application built by the factory.
func (rt *Runtime) Application() Application {
	return rt.app
}

// Pending returns a copy of the queued timeouts in delivery order.
func (rt *Runtime) Pending() []Timeout {
	out := make([]Timeout, len(rt.pending))
	copy(out, rt.pending)
	return out
}

// SetTimeout schedules action for delivery at Uptime()+delay. A zero delay
// delivers on the next Advance, before Render.
func (rt *Runtime) SetTimeout(delay Tick, action Action) {
	if action == nil {
		panic("realtime: nil timeout action")
	}
	rt.pending.insert(Timeout{
		DeliverAt: rt.uptime + delay,
		Seq:       rt.seq,
		Action:    action,
	})
	rt.seq++
}

// SetTimer schedules action every period ticks. Each firing re-arms at the
// tick it fired on plus period, so a delta that does not divide period
// drifts the schedule. Timers cannot be cancelled. A timer whose action
// fails is not re-armed.
func (rt *Runtime) SetTimer(period Tick, action Action) {
	if period == 0 {
		panic("realtime: timer period must be positive")
	}
	if action == nil {
		panic("realtime: nil timer action")
	}
	var fire Action
	fire = func() error {
		if err := action(); err != nil {
			return err
		}
		rt.SetTimeout(period, fire)
		return nil
	}
	rt.SetTimeout(period, fire)
}

// Run advances the clock in steps of 1000/frequency ticks until at least
// duration ticks have elapsed.
func (rt *Runtime) Run(ctx context.Context, frequency, duration int) error {
	if frequency <= 0 {
		return fmt.Errorf("%w: frequency %d must be positive", ErrInvalidConfig, frequency)
	}
	if duration <= 0 {
		return fmt.Errorf("%w: duration %d must be positive", ErrInvalidConfig, duration)
	}
	delta := 1000 / frequency
	if delta == 0 {
		return fmt.Errorf("%w: frequency %d yields a zero-tick step", ErrInvalidConfig, frequency)
	}

	rt.logger.Info("run started", "frequency", frequency, "duration", duration, "delta", delta)
	for elapsed := 0; elapsed < duration; elapsed += delta {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rt.Advance(Tick(delta)); err != nil {
			return err
		}
	}
	rt.logger.Info("run finished", "uptime", rt.uptime, "pending", len(rt.pending))
	return nil
}
