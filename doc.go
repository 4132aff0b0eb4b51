// Package tickx is a keyed, reducer-driven state store for control loops.
//
// A Store is built from a fixed set of slots. Each slot pairs a Key with a
// typed reducer and an initial state:
//
//	level := tickx.NewSlot[int]("tank0.level", 0, func(msg tickx.Message, cur int) int {
//		if m, ok := msg.(LevelSampled); ok && m.Tank == 0 {
//			return m.Level
//		}
//		return cur
//	})
//	store := tickx.NewStore([]tickx.Registration{level})
//
// Dispatch hands a message to every reducer. When at least one slot ends up
// with a different value, every attached listener runs once. Listeners
// react by returning follow-up messages, which are dispatched depth-first
// before the next listener runs.
//
// Typed reads go through the slot (level.Get(store)) or Lookup. The store
// keeps erased values internally, but every stored value was produced by
// the slot registered for its key, so a mismatch can only come from reading
// a key with the wrong type.
//
// The package realtime drives stores from a logical clock.
package tickx
