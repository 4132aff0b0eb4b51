package realtime

import "fmt"

// Advance moves the clock by delta, delivers every timeout due at the new
// uptime and renders the application once.
//
// The due set is fixed on entry. Timeouts armed by delivered actions wait
// for the next Advance even when already due. If an action fails, the rest
// of the due set stays queued, Render is skipped and the error is returned.
func (rt *Runtime) Advance(delta Tick) error {
	rt.uptime += delta
	rt.observer.Advanced(rt.uptime)

	due := rt.pending.due(rt.uptime)
	for i := 0; i < due; i++ {
		// New entries are never due before the remaining prefix, so the
		// front of the queue is still the next due timeout.
		t := rt.pending.pop()
		if err := t.Action(); err != nil {
			rt.observer.Delivered(i + 1)
			rt.logger.Error("timeout failed", "uptime", rt.uptime, "seq", t.Seq, "error", err)
			return fmt.Errorf("tick %d: timeout %d: %w", rt.uptime, t.Seq, err)
		}
	}
	rt.observer.Delivered(due)
	if due > 0 {
		rt.logger.Debug("timeouts delivered", "uptime", rt.uptime, "count", due)
	}

	rt.render()
	return nil
}

func (rt *Runtime) render() {
	if store := rt.app.Store(); store != nil {
		release := store.Freeze()
		defer release()
	}
	rt.app.Render()
}
