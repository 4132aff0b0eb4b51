// Package builder provides constructors for common slot shapes.
package builder

import "github.com/comalice/tickx"

// Latest keeps the value carried by the most recent message of type M that
// extract accepts.
func Latest[M any, S comparable](key tickx.Key, initial S, extract func(M) (S, bool)) tickx.Slot[S] {
	return tickx.NewSlot(key, initial, func(msg tickx.Message, cur S) S {
		m, ok := msg.(M)
		if !ok {
			return cur
		}
		if next, ok := extract(m); ok {
			return next
		}
		return cur
	})
}

// Counter counts the messages match accepts.
func Counter(key tickx.Key, match func(tickx.Message) bool) tickx.Slot[int] {
	return tickx.NewSlot(key, 0, func(msg tickx.Message, cur int) int {
		if match(msg) {
			return cur + 1
		}
		return cur
	})
}

// Flag is set by messages on accepts and cleared by messages off accepts.
// When both accept a message, on wins.
func Flag(key tickx.Key, initial bool, on, off func(tickx.Message) bool) tickx.Slot[bool] {
	return tickx.NewSlot(key, initial, func(msg tickx.Message, cur bool) bool {
		switch {
		case on(msg):
			return true
		case off(msg):
			return false
		}
		return cur
	})
}

// Registrations erases slots of any state type into a registration list.
func Registrations(regs ...tickx.Registration) []tickx.Registration {
	return regs
}
