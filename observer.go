package tickx

// Observer receives counters from a Store. Implementations must be cheap;
// they run inline with dispatch.
type Observer interface {
	// Dispatched is called once per reduction pass over all slots.
	Dispatched(changed bool)
	// Notified is called when a listener pass completes.
	Notified(listeners int)
}

// NopObserver discards everything.
type NopObserver struct{}

func (NopObserver) Dispatched(bool) {}
func (NopObserver) Notified(int)    {}
