package tickx

// Handle identifies an attached listener. Handles are slot indexes and are
// never reused.
type Handle int

// Listener is notified after a dispatch that changed at least one slot.
// The messages it returns are dispatched, in order, before the next
// listener is notified.
type Listener interface {
	OnChange(v View) []Message
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(v View) []Message

// OnChange calls f(v).
func (f ListenerFunc) OnChange(v View) []Message { return f(v) }

// View is read-only access to store state.
type View interface {
	// Value returns the state stored under key, or ErrUnknownKey.
	Value(key Key) (any, error)
	// Keys returns the registered keys in sorted order.
	Keys() []Key
}
