package realtime

// Observer receives counters from a Runtime. Implementations run inline
// with Advance.
type Observer interface {
	// Advanced is called after the clock moves.
	Advanced(uptime Tick)
	// Delivered is called with the number of timeouts fired in a tick.
	Delivered(timeouts int)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) Advanced(Tick) {}
func (NopObserver) Delivered(int) {}
