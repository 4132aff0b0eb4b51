package production

import (
	"testing"

	"github.com/comalice/tickx"
)

func TestChannelPublisher_Delivery(t *testing.T) {
	ch := make(chan ChangeNotice, 10)
	p := NewChannelPublisher(ch)

	store := testStore(t)
	store.Attach(p)
	if err := store.Dispatch("bump"); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-ch:
		if got.Seq != 1 {
			t.Errorf("Seq mismatch: got %d, want 1", got.Seq)
		}
		if got.State["count"] != 2 {
			t.Errorf("count mismatch: got %v, want 2", got.State["count"])
		}
	default:
		t.Fatal("No notice received")
	}
}

func TestChannelPublisher_DropOnFull(t *testing.T) {
	ch := make(chan ChangeNotice, 1)
	p := NewChannelPublisher(ch)
	store := testStore(t)
	store.Attach(p)

	for i := 0; i < 3; i++ {
		if err := store.Dispatch("bump"); err != nil {
			t.Fatal(err)
		}
	}
	if p.Dropped() != 2 {
		t.Errorf("Expected 2 dropped notices, got %d", p.Dropped())
	}
	if got := <-ch; got.State["count"] != 2 {
		t.Errorf("Expected first notice to survive, got %v", got.State)
	}
}

func TestChannelPublisher_NoFollowUps(t *testing.T) {
	ch := make(chan ChangeNotice, 1)
	p := NewChannelPublisher(ch)
	if msgs := p.OnChange(tickx.NewStore(nil)); msgs != nil {
		t.Errorf("Expected no follow-ups, got %v", msgs)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-ch; !ok {
		t.Fatal("buffered notice lost on close")
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel not closed")
	}
}
