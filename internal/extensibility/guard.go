package extensibility

import "github.com/comalice/tickx"

// Guard decides from store state whether a guarded listener runs.
type Guard func(v tickx.View) bool

// GuardedListener runs its inner listener only when the guard holds.
type GuardedListener struct {
	guard Guard
	inner tickx.Listener
}

// NewGuardedListener creates a GuardedListener. A nil guard always passes.
func NewGuardedListener(guard Guard, inner tickx.Listener) *GuardedListener {
	return &GuardedListener{guard: guard, inner: inner}
}

func (g *GuardedListener) OnChange(v tickx.View) []tickx.Message {
	if g.guard != nil && !g.guard(v) {
		return nil
	}
	return g.inner.OnChange(v)
}

// AllOf passes when every guard passes.
func AllOf(guards ...Guard) Guard {
	return func(v tickx.View) bool {
		for _, g := range guards {
			if !g(v) {
				return false
			}
		}
		return true
	}
}

// AnyOf passes when at least one guard passes.
func AnyOf(guards ...Guard) Guard {
	return func(v tickx.View) bool {
		for _, g := range guards {
			if g(v) {
				return true
			}
		}
		return false
	}
}
