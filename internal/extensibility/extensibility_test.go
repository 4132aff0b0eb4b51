package extensibility

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/comalice/tickx"
	"github.com/comalice/tickx/realtime"
)

var counter = tickx.NewSlot[int]("count", 0, func(msg tickx.Message, cur int) int {
	switch m := msg.(type) {
	case int:
		return cur + m
	}
	return cur
})

func TestLoggingListener(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	inner := tickx.ListenerFunc(func(v tickx.View) []tickx.Message {
		if counter.Get(v) == 1 {
			return []tickx.Message{10}
		}
		return nil
	})
	store := tickx.NewStore([]tickx.Registration{counter})
	store.Attach(NewLoggingListener("doubler", inner, logger))

	if err := store.Dispatch(1); err != nil {
		t.Fatal(err)
	}
	if counter.Get(store) != 11 {
		t.Fatalf("follow-up lost: count=%d", counter.Get(store))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first["listener"] != "doubler" || first["follow_ups"] != float64(1) {
		t.Errorf("unexpected log entry: %v", first)
	}
}

func TestGuardedListener(t *testing.T) {
	calls := 0
	inner := tickx.ListenerFunc(func(tickx.View) []tickx.Message {
		calls++
		return nil
	})
	above := func(n int) Guard {
		return func(v tickx.View) bool { return counter.Get(v) > n }
	}

	store := tickx.NewStore([]tickx.Registration{counter})
	store.Attach(NewGuardedListener(AllOf(above(2), above(3)), inner))
	store.Attach(NewGuardedListener(AnyOf(above(100), above(4)), inner))
	store.Attach(NewGuardedListener(nil, inner))

	for i := 0; i < 5; i++ {
		if err := store.Dispatch(1); err != nil {
			t.Fatal(err)
		}
	}
	// count goes 1..5: unguarded runs 5 times, AllOf(>2,>3) at 4 and 5, AnyOf(>4) at 5.
	if calls != 5+2+1 {
		t.Errorf("expected 8 calls, got %d", calls)
	}
}

type replayApp struct {
	store *tickx.Store
	seen  []int
}

func (a *replayApp) Store() *tickx.Store { return a.store }
func (a *replayApp) Render()             { a.seen = append(a.seen, counter.Get(a.store)) }

func TestScheduleReplay(t *testing.T) {
	app := &replayApp{store: tickx.NewStore([]tickx.Registration{counter})}
	rt, err := realtime.NewRuntime(func(s realtime.Scheduler) (realtime.Application, error) {
		ScheduleReplay(s, app.store, []ReplayEntry{
			{At: 20, Message: 5},
			{At: 10, Message: 1},
			{At: 20, Message: 100},
		})
		return app, nil
	}, realtime.Config{})
	if err != nil {
		t.Fatal(err)
	}

	if err := rt.Run(context.Background(), 100, 30); err != nil {
		t.Fatal(err)
	}
	want := []int{1, 106, 106}
	if len(app.seen) != len(want) {
		t.Fatalf("expected renders %v, got %v", want, app.seen)
	}
	for i := range want {
		if app.seen[i] != want[i] {
			t.Fatalf("expected renders %v, got %v", want, app.seen)
		}
	}
}
