// Package realtime provides a tick-based deterministic runtime for tickx stores.
//
// The clock is a logical counter. Nothing here reads wall-clock time, sleeps
// or starts goroutines; a Runtime only moves when Advance or Run is called.
//
// # Example Usage
//
//	rt, _ := realtime.NewRuntime(func(s realtime.Scheduler) (realtime.Application, error) {
//		app := newMonitor(s)
//		s.SetTimer(100, app.poll) // sensor poll every 100 ticks
//		return app, nil
//	}, realtime.Config{Logger: logger})
//	err := rt.Run(ctx, 10, 1000) // 10 steps of 100 ticks
//
// # Tick Phases
//
// Each Advance runs three phases:
//  1. The clock moves by delta.
//  2. Every timeout due at the new uptime fires, in delivery order.
//  3. The application renders once, with its store frozen.
//
// # Delivery Ordering Guarantees
//
// Timeouts are ordered deterministically using:
//  1. Delivery tick (earlier first)
//  2. Insertion order for timeouts armed for the same tick
//
// The set of due timeouts is fixed when phase 2 starts. A timeout armed by
// a delivered action waits for the next Advance, even with a zero delay.
//
// # Timers
//
// A timer re-arms itself at the tick it actually fired on plus its period.
// When the Run step does not divide the period, firings drift by up to one
// step each; there is no compensation. Timers and timeouts cannot be
// cancelled.
//
// # Use Cases
//
//   - Sense-and-actuate control loops
//   - Simulations with a fixed time-step
//   - Testing/debugging (reproducible scenarios)
package realtime
