package tickx

import "errors"

var (
	// ErrUnknownKey is returned when a key is not registered with the store.
	ErrUnknownKey = errors.New("tickx: unknown state key")
	// ErrTypeMismatch reports a state value whose concrete type does not match the slot.
	ErrTypeMismatch = errors.New("tickx: state type mismatch")
	// ErrUnknownHandle is returned by Detach for handles that are not attached.
	ErrUnknownHandle = errors.New("tickx: unknown listener handle")
	// ErrRecursionLimit is returned when a change would nest deeper than WithMaxDepth allows.
	// The rejected change is not committed.
	ErrRecursionLimit = errors.New("tickx: dispatch recursion limit exceeded")
	// ErrDispatchDuringRender is returned when Dispatch is called while the store is frozen.
	ErrDispatchDuringRender = errors.New("tickx: dispatch during render")
)
