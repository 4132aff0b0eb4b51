package builder

import (
	"testing"

	"github.com/comalice/tickx"
)

type reading struct {
	sensor string
	value  int
}

type alarm struct{ on bool }

func TestSlotHelpers(t *testing.T) {
	temp := Latest("temp", -1, func(r reading) (int, bool) {
		return r.value, r.sensor == "temp"
	})
	readings := Counter("readings", func(msg tickx.Message) bool {
		_, ok := msg.(reading)
		return ok
	})
	alarmed := Flag("alarm", false,
		func(msg tickx.Message) bool { a, ok := msg.(alarm); return ok && a.on },
		func(msg tickx.Message) bool { a, ok := msg.(alarm); return ok && !a.on },
	)
	store := tickx.NewStore(Registrations(temp, readings, alarmed))

	if temp.Get(store) != -1 {
		t.Fatalf("expected initial -1, got %d", temp.Get(store))
	}

	msgs := []tickx.Message{
		reading{"temp", 21},
		reading{"humidity", 40},
		alarm{true},
		"ignored",
		reading{"temp", 23},
		alarm{false},
	}
	for _, m := range msgs {
		if err := store.Dispatch(m); err != nil {
			t.Fatal(err)
		}
	}

	if temp.Get(store) != 23 {
		t.Errorf("temp: got %d want 23", temp.Get(store))
	}
	if readings.Get(store) != 3 {
		t.Errorf("readings: got %d want 3", readings.Get(store))
	}
	if alarmed.Get(store) {
		t.Error("alarm should be cleared")
	}
}
