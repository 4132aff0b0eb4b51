package production

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/comalice/tickx"
)

func TestMetricsObserveStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	count := tickx.NewSlot[int]("count", 0, func(msg tickx.Message, cur int) int {
		if msg == "bump" {
			return cur + 1
		}
		return cur
	})
	store := tickx.NewStore([]tickx.Registration{count}, tickx.WithObserver(m))
	store.Attach(tickx.ListenerFunc(func(tickx.View) []tickx.Message { return nil }))
	store.Attach(tickx.ListenerFunc(func(tickx.View) []tickx.Message { return nil }))

	for _, msg := range []string{"bump", "noop", "bump"} {
		if err := store.Dispatch(msg); err != nil {
			t.Fatal(err)
		}
	}

	if got := testutil.ToFloat64(m.reductions.WithLabelValues("true")); got != 2 {
		t.Errorf("changed reductions: got %v want 2", got)
	}
	if got := testutil.ToFloat64(m.reductions.WithLabelValues("false")); got != 1 {
		t.Errorf("unchanged reductions: got %v want 1", got)
	}
	if got := testutil.ToFloat64(m.listenerRuns); got != 4 {
		t.Errorf("listener runs: got %v want 4", got)
	}
}

func TestMetricsObserveRuntime(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	m.Advanced(100)
	m.Delivered(3)
	m.Advanced(200)
	m.Delivered(0)

	if got := testutil.ToFloat64(m.advances); got != 2 {
		t.Errorf("advances: got %v want 2", got)
	}
	if got := testutil.ToFloat64(m.uptime); got != 200 {
		t.Errorf("uptime: got %v want 200", got)
	}
	if got := testutil.ToFloat64(m.delivered); got != 3 {
		t.Errorf("delivered: got %v want 3", got)
	}
}

func TestMetricsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("second NewMetrics failed: %v", err)
	}
	first.Advanced(1)
	second.Advanced(2)
	if got := testutil.ToFloat64(first.advances); got != 2 {
		t.Errorf("shared advances: got %v want 2", got)
	}
}
