package testutil

import (
	"context"
	"testing"

	"github.com/comalice/tickx"
	"github.com/comalice/tickx/realtime"
)

func TestCountersAndRecorder(t *testing.T) {
	store := tickx.NewStore(Counters("A", "B"))
	rec := &Recorder{}
	store.Attach(rec)

	for _, k := range []tickx.Key{"A", "A", "B", "C"} {
		if err := store.Dispatch(Incr{Key: k}); err != nil {
			t.Fatal(err)
		}
	}
	if rec.Calls() != 3 {
		t.Fatalf("expected 3 notifications, got %d", rec.Calls())
	}
	last := rec.Snapshots[2]
	if last["A"] != 2 || last["B"] != 1 {
		t.Errorf("unexpected last snapshot %v", last)
	}
}

// TestCountersDrivenByTimers runs the two-counter scenario through a runtime.
func TestCountersDrivenByTimers(t *testing.T) {
	a := CounterSlot("A")
	store := tickx.NewStore([]tickx.Registration{a, CounterSlot("B")})
	rt, app, err := NewRuntime(store, func(app *App) {
		app.Sched.SetTimer(100, func() error {
			return app.Store().Dispatch(Incr{Key: "A"})
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := rt.Run(context.Background(), 10, 1000); err != nil {
		t.Fatal(err)
	}
	if a.Get(store) != 10 {
		t.Errorf("expected A=10, got %d", a.Get(store))
	}
	if len(app.Renders) != 10 || app.Renders[9] != realtime.Tick(1000) {
		t.Errorf("unexpected renders %v", app.Renders)
	}
}
