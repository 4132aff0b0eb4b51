// Package testutil provides slots, listeners and applications shared by
// tests and benchmarks.
package testutil

import (
	"github.com/comalice/tickx"
	"github.com/comalice/tickx/builder"
	"github.com/comalice/tickx/realtime"
)

// Incr increments the counter registered under Key.
type Incr struct {
	Key tickx.Key
}

// CounterSlot counts Incr messages addressed to key.
func CounterSlot(key tickx.Key) tickx.Slot[int] {
	return builder.Counter(key, func(msg tickx.Message) bool {
		m, ok := msg.(Incr)
		return ok && m.Key == key
	})
}

// Counters returns one counter registration per key.
func Counters(keys ...tickx.Key) []tickx.Registration {
	regs := make([]tickx.Registration, len(keys))
	for i, k := range keys {
		regs[i] = CounterSlot(k)
	}
	return regs
}

// Recorder is a listener that records a snapshot per notification.
type Recorder struct {
	Snapshots []map[tickx.Key]any
}

func (r *Recorder) OnChange(v tickx.View) []tickx.Message {
	snap := make(map[tickx.Key]any)
	for _, k := range v.Keys() {
		val, _ := v.Value(k)
		snap[k] = val
	}
	r.Snapshots = append(r.Snapshots, snap)
	return nil
}

// Calls returns how many times the recorder was notified.
func (r *Recorder) Calls() int {
	return len(r.Snapshots)
}

// App is a realtime.Application backed by a store. It records the uptime
// of every render and runs OnRender if set.
type App struct {
	Sched    realtime.Scheduler
	store    *tickx.Store
	Renders  []realtime.Tick
	OnRender func(a *App)
}

var _ realtime.Application = (*App)(nil)

// NewApp builds an App over store.
func NewApp(s realtime.Scheduler, store *tickx.Store) *App {
	return &App{Sched: s, store: store}
}

func (a *App) Store() *tickx.Store { return a.store }

func (a *App) Render() {
	a.Renders = append(a.Renders, a.Sched.Uptime())
	if a.OnRender != nil {
		a.OnRender(a)
	}
}

// NewRuntime builds a runtime around an App over store. setup, if set, runs
// inside the factory and may arm timeouts.
func NewRuntime(store *tickx.Store, setup func(a *App)) (*realtime.Runtime, *App, error) {
	var app *App
	rt, err := realtime.NewRuntime(func(s realtime.Scheduler) (realtime.Application, error) {
		app = NewApp(s, store)
		if setup != nil {
			setup(app)
		}
		return app, nil
	}, realtime.Config{RunID: "testutil"})
	if err != nil {
		return nil, nil, err
	}
	return rt, app, nil
}
