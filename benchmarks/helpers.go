// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/tickx"
	"github.com/comalice/tickx/testutil"
)

// GenCounterKeys returns n keys c0..c(n-1).
func GenCounterKeys(n int) []tickx.Key {
	if n < 1 {
		n = 1
	}
	keys := make([]tickx.Key, n)
	for i := range keys {
		keys[i] = tickx.Key(fmt.Sprintf("c%d", i))
	}
	return keys
}

// GenWideStore creates a store with n counter slots and l no-op listeners.
func GenWideStore(n, l int) (*tickx.Store, []tickx.Key) {
	keys := GenCounterKeys(n)
	store := tickx.NewStore(testutil.Counters(keys...))
	for i := 0; i < l; i++ {
		store.Attach(tickx.ListenerFunc(func(tickx.View) []tickx.Message { return nil }))
	}
	return store, keys
}

// GenChainStore creates a store whose single listener re-dispatches until
// the counter reaches depth, so one Dispatch drives depth nested passes.
func GenChainStore(depth int) (*tickx.Store, tickx.Slot[int]) {
	c := testutil.CounterSlot("chain")
	store := tickx.NewStore([]tickx.Registration{c})
	store.Attach(tickx.ListenerFunc(func(v tickx.View) []tickx.Message {
		if c.Get(v)%depth != 0 {
			return []tickx.Message{testutil.Incr{Key: "chain"}}
		}
		return nil
	}))
	return store, c
}

// GenSnapshotYAML generates YAML bytes for the state of a store with n slots.
func GenSnapshotYAML(n int) []byte {
	store, keys := GenWideStore(n, 0)
	for _, k := range keys {
		if err := store.Dispatch(testutil.Incr{Key: k}); err != nil {
			panic(err)
		}
	}
	data, err := yaml.Marshal(store.Snapshot())
	if err != nil {
		panic(err)
	}
	return data
}
