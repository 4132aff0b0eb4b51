package tickx

import "fmt"

// Key identifies one independently reduced slot of application state.
type Key string

// Message is anything dispatched to a Store. Every reducer sees every
// message and returns its state unchanged for messages it does not handle.
type Message any

// ReduceFunc computes the next state of a slot from a message and the
// current state. It must be pure.
type ReduceFunc[S any] func(msg Message, state S) S

// Registration is the erased form of a Slot held by a Store. It is sealed:
// Slot is the only implementation, so every erased value a Store holds was
// produced by the reducer registered for its key.
type Registration interface {
	Key() Key

	initialState() any
	reduce(msg Message, state any) any
	equal(a, b any) bool
}

// Slot binds a key to a typed reducer, its initial state and an equality
// used for change detection.
type Slot[S any] struct {
	key     Key
	initial S
	reducer ReduceFunc[S]
	eq      func(a, b S) bool
}

// NewSlot creates a slot whose change detection uses ==. S must not be an
// interface type holding non-comparable values, or comparison panics.
func NewSlot[S comparable](key Key, initial S, reduce ReduceFunc[S]) Slot[S] {
	return NewSlotFunc(key, initial, reduce, func(a, b S) bool { return a == b })
}

// NewSlotFunc creates a slot with an explicit equality, for state types
// such as slices or maps that do not support ==.
func NewSlotFunc[S any](key Key, initial S, reduce ReduceFunc[S], equal func(a, b S) bool) Slot[S] {
	if reduce == nil {
		panic(fmt.Sprintf("tickx: slot %q has nil reducer", key))
	}
	if equal == nil {
		panic(fmt.Sprintf("tickx: slot %q has nil equality", key))
	}
	return Slot[S]{key: key, initial: initial, reducer: reduce, eq: equal}
}

// Key returns the slot's key.
func (s Slot[S]) Key() Key { return s.key }

// Initial returns the state the slot starts with.
func (s Slot[S]) Initial() S { return s.initial }

// Get returns the slot's current state in v. It panics if the slot is not
// registered in v or holds a value of another type; both are caller bugs.
func (s Slot[S]) Get(v View) S {
	st, err := Lookup[S](v, s.key)
	if err != nil {
		panic(err)
	}
	return st
}

func (s Slot[S]) initialState() any { return s.initial }

func (s Slot[S]) reduce(msg Message, state any) any {
	return s.reducer(msg, s.cast(state))
}

func (s Slot[S]) equal(a, b any) bool {
	return s.eq(s.cast(a), s.cast(b))
}

func (s Slot[S]) cast(v any) S {
	var zero S
	if v == nil {
		// A nil interface state boxes to a nil any.
		return zero
	}
	st, ok := v.(S)
	if !ok {
		panic(fmt.Errorf("%w: slot %q holds %T, want %T", ErrTypeMismatch, s.key, v, zero))
	}
	return st
}

// Lookup returns the state stored under key as S.
func Lookup[S any](v View, key Key) (S, error) {
	var zero S
	val, err := v.Value(key)
	if err != nil {
		return zero, err
	}
	if val == nil {
		return zero, nil
	}
	st, ok := val.(S)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, want %T", ErrTypeMismatch, key, val, zero)
	}
	return st, nil
}
