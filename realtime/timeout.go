package realtime

import (
	"slices"
	"sort"
)

// Tick is the logical unit of time advanced by a Runtime.
type Tick uint64

// Action is the work a timeout performs when delivered.
type Action func() error

// Timeout is a one-shot action bound to a tick.
type Timeout struct {
	DeliverAt Tick
	Seq       uint64 // insertion order, for logs and tie inspection
	Action    Action
}

// pendingQueue is sorted ascending by DeliverAt. Entries with equal
// DeliverAt stay in insertion order.
type pendingQueue []Timeout

// insert places t immediately before the first entry with a strictly
// greater DeliverAt, so it lands after existing entries with the same tick.
func (q *pendingQueue) insert(t Timeout) {
	i := sort.Search(len(*q), func(i int) bool {
		return (*q)[i].DeliverAt > t.DeliverAt
	})
	*q = slices.Insert(*q, i, t)
}

// due returns how many leading entries are deliverable at now.
func (q pendingQueue) due(now Tick) int {
	return sort.Search(len(q), func(i int) bool {
		return q[i].DeliverAt > now
	})
}

func (q *pendingQueue) pop() Timeout {
	t := (*q)[0]
	(*q)[0] = Timeout{}
	*q = (*q)[1:]
	return t
}
