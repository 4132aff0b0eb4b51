package extensibility

import (
	"github.com/comalice/tickx"
	"github.com/comalice/tickx/realtime"
)

// ReplayEntry is a message to dispatch at a tick offset.
type ReplayEntry struct {
	At      realtime.Tick
	Message tickx.Message
}

// Dispatcher is the part of a store a replay needs.
type Dispatcher interface {
	Dispatch(msg tickx.Message) error
}

// ScheduleReplay arms one timeout per entry, relative to the scheduler's
// current uptime. Entries at the same offset are dispatched in slice order.
func ScheduleReplay(s realtime.Scheduler, d Dispatcher, entries []ReplayEntry) {
	for _, e := range entries {
		msg := e.Message
		s.SetTimeout(e.At, func() error {
			return d.Dispatch(msg)
		})
	}
}
