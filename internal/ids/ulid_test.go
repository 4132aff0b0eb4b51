package ids

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewRunIDParses(t *testing.T) {
	id := NewRunID()
	if len(id) != ulid.EncodedSize {
		t.Fatalf("got length %d want %d", len(id), ulid.EncodedSize)
	}
	if _, err := ulid.Parse(id); err != nil {
		t.Fatalf("parse %q: %v", id, err)
	}
}

func TestNewRunIDMonotonic(t *testing.T) {
	prev := NewRunID()
	for i := 0; i < 100; i++ {
		next := NewRunID()
		if next <= prev {
			t.Fatalf("run ids not increasing: %s then %s", prev, next)
		}
		prev = next
	}
}
