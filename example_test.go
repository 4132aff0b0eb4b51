package tickx_test

import (
	"fmt"

	"github.com/comalice/tickx"
)

type levelSampled struct{ level int }

type valveCommand struct{ open bool }

func ExampleStore() {
	level := tickx.NewSlot[int]("level", 0, func(msg tickx.Message, cur int) int {
		if m, ok := msg.(levelSampled); ok {
			return m.level
		}
		return cur
	})
	valve := tickx.NewSlot[bool]("valve", false, func(msg tickx.Message, cur bool) bool {
		if m, ok := msg.(valveCommand); ok {
			return m.open
		}
		return cur
	})
	store := tickx.NewStore([]tickx.Registration{level, valve})

	store.Attach(tickx.ListenerFunc(func(v tickx.View) []tickx.Message {
		overflowing := level.Get(v) > 80
		if overflowing != valve.Get(v) {
			return []tickx.Message{valveCommand{open: overflowing}}
		}
		return nil
	}))

	for _, l := range []int{40, 90, 85, 30} {
		_ = store.Dispatch(levelSampled{l})
		fmt.Printf("level=%d valve=%v\n", level.Get(store), valve.Get(store))
	}
	// Output:
	// level=40 valve=false
	// level=90 valve=true
	// level=85 valve=true
	// level=30 valve=false
}
