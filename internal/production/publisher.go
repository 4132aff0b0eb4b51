package production

import (
	"github.com/comalice/tickx"
)

// ChangeNotice is the state of a store after a changing dispatch.
type ChangeNotice struct {
	Seq   uint64
	State map[tickx.Key]any
}

// ChannelPublisher is a listener that forwards change notices to a Go
// channel. Publishing never blocks; notices are dropped when the channel
// is full.
type ChannelPublisher struct {
	ch      chan<- ChangeNotice
	seq     uint64
	dropped uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- ChangeNotice) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// OnChange publishes the current state. It never returns follow-ups.
func (p *ChannelPublisher) OnChange(v tickx.View) []tickx.Message {
	state := make(map[tickx.Key]any)
	for _, key := range v.Keys() {
		if val, err := v.Value(key); err == nil {
			state[key] = val
		}
	}
	p.seq++
	select {
	case p.ch <- ChangeNotice{Seq: p.seq, State: state}:
	default:
		p.dropped++
	}
	return nil
}

// Dropped returns how many notices did not fit in the channel.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped
}

func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}
