package tickx

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/eapache/queue"
)

// Store holds one state value per registered key and notifies listeners
// when a dispatch changes any of them.
//
// A Store is not safe for concurrent use. Listeners run synchronously
// inside Dispatch.
type Store struct {
	reducers  map[Key]Registration
	state     map[Key]any
	listeners []Listener // nil entries are detached

	maxDepth int
	depth    int // open listener frames, across re-entrant Dispatch calls
	frozen   int

	logger   *slog.Logger
	observer Observer
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMaxDepth bounds how many changing dispatches may be nested, counting
// both follow-up messages and listeners that call Dispatch directly. Zero
// means unlimited.
func WithMaxDepth(depth int) StoreOption {
	return func(s *Store) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver sets the observer that receives dispatch counters.
func WithObserver(o Observer) StoreOption {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewStore builds a store from regs. When two registrations share a key the
// later one wins. Every key starts at its slot's initial state.
func NewStore(regs []Registration, opts ...StoreOption) *Store {
	s := &Store{
		reducers: make(map[Key]Registration, len(regs)),
		state:    make(map[Key]any, len(regs)),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, r := range regs {
		if r == nil {
			panic("tickx: nil registration")
		}
		s.reducers[r.Key()] = r
		s.state[r.Key()] = r.initialState()
	}
	return s
}

// frame is one listener pass. pending holds follow-up messages returned by
// the listener that ran last; they are drained before the pass continues.
type frame struct {
	next     int
	notified int
	pending  *queue.Queue
}

func newFrame() frame {
	return frame{pending: queue.New()}
}

// Dispatch reduces msg into every slot. If any slot changed, every attached
// listener is notified once. Follow-up messages returned by a listener are
// dispatched depth-first: each runs to completion, including its own
// listener pass, before the next listener of the enclosing pass.
//
// When a change would exceed the WithMaxDepth bound it is not committed and
// Dispatch returns ErrRecursionLimit. Listener passes still open in this
// call are abandoned along with their queued follow-ups.
func (s *Store) Dispatch(msg Message) error {
	if s.frozen > 0 {
		return ErrDispatchDuringRender
	}
	if changed, err := s.apply(msg); err != nil || !changed {
		return err
	}

	stack := []frame{newFrame()}
	defer func() { s.depth -= len(stack) }()
	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]

		if f.pending.Length() > 0 {
			changed, err := s.apply(f.pending.Remove())
			if err != nil {
				return err
			}
			if changed {
				stack = append(stack, newFrame())
			}
			continue
		}

		if f.next >= len(s.listeners) {
			s.observer.Notified(f.notified)
			stack = stack[:top]
			s.depth--
			continue
		}

		l := s.listeners[f.next]
		f.next++
		if l == nil {
			continue
		}
		f.notified++
		for _, m := range l.OnChange(s) {
			f.pending.Add(m)
		}
	}
	return nil
}

// apply runs one reduction pass and reports whether any slot changed. A
// change is committed only together with a new listener frame, which the
// caller must push. Iteration order over keys is unspecified; reducers must
// not depend on it.
func (s *Store) apply(msg Message) (bool, error) {
	var changes map[Key]any
	for key, r := range s.reducers {
		cur := s.state[key]
		next := r.reduce(msg, cur)
		if r.equal(cur, next) {
			continue
		}
		if changes == nil {
			changes = make(map[Key]any)
		}
		changes[key] = next
	}
	if len(changes) == 0 {
		s.observer.Dispatched(false)
		return false, nil
	}
	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		s.observer.Dispatched(false)
		return false, fmt.Errorf("%w: depth %d", ErrRecursionLimit, s.depth+1)
	}

	maps.Copy(s.state, changes)
	s.observer.Dispatched(true)
	s.depth++
	s.logger.Debug("state changed", "message", fmt.Sprintf("%T", msg), "depth", s.depth)
	return true, nil
}

// Attach registers l and returns its handle.
func (s *Store) Attach(l Listener) Handle {
	if l == nil {
		panic("tickx: nil listener")
	}
	s.listeners = append(s.listeners, l)
	return Handle(len(s.listeners) - 1)
}

// Detach removes the listener behind h. Other handles keep their meaning.
// Detaching an unknown or already detached handle returns ErrUnknownHandle
// and leaves the registry untouched.
func (s *Store) Detach(h Handle) error {
	if h < 0 || int(h) >= len(s.listeners) || s.listeners[h] == nil {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	s.listeners[h] = nil
	return nil
}

// Attached returns the number of listeners currently attached.
func (s *Store) Attached() int {
	n := 0
	for _, l := range s.listeners {
		if l != nil {
			n++
		}
	}
	return n
}

// Value returns the state stored under key.
func (s *Store) Value(key Key) (any, error) {
	v, ok := s.state[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return v, nil
}

// Keys returns the registered keys in sorted order.
func (s *Store) Keys() []Key {
	return slices.Sorted(maps.Keys(s.reducers))
}

// Snapshot returns a copy of the current state map.
func (s *Store) Snapshot() map[Key]any {
	return maps.Clone(s.state)
}

// Freeze makes Dispatch fail with ErrDispatchDuringRender until the
// returned release func is called. Freezes nest.
func (s *Store) Freeze() (release func()) {
	s.frozen++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.frozen--
	}
}
