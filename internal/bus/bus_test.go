package bus

import (
	"testing"

	"seqview/internal/selection"
)

func TestPublishOrder(t *testing.T) {
	b := New()
	var got []string
	b.Subscribe(func(e Event) { got = append(got, "a:"+e.Kind().String()) })
	b.Subscribe(func(e Event) { got = append(got, "b:"+e.Kind().String()) })

	b.Publish(Event{Origin: "x", Payload: ScaleChanged{}})
	b.Publish(Event{Origin: "x", Payload: SelectionChanged{Mode: selection.Hover}})

	want := []string{"a:scale-changed", "b:scale-changed", "a:selection-changed", "b:selection-changed"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivery %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	n := 0
	unsub := b.Subscribe(func(Event) { n++ })
	b.Publish(Event{Payload: ScaleChanged{}})
	unsub()
	unsub()
	b.Publish(Event{Payload: ScaleChanged{}})
	if n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := New()
	var calls []int
	var unsub func()
	unsub = b.Subscribe(func(Event) {
		calls = append(calls, 1)
		unsub()
	})
	b.Subscribe(func(Event) { calls = append(calls, 2) })

	b.Publish(Event{Payload: ScaleChanged{}})
	b.Publish(Event{Payload: ScaleChanged{}})
	if len(calls) != 3 || calls[0] != 1 || calls[1] != 2 || calls[2] != 2 {
		t.Fatalf("calls = %v", calls)
	}
}

func TestNestedPublish(t *testing.T) {
	b := New()
	var kinds []Kind
	b.Subscribe(func(e Event) {
		kinds = append(kinds, e.Kind())
		if e.Kind() == KindScaleChanged {
			b.Publish(Event{Payload: RowReady{TrackID: "r", Height: 3}})
		}
	})
	b.Publish(Event{Payload: ScaleChanged{}})
	if len(kinds) != 2 || kinds[1] != KindRowReady {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestChannelDropsWhenFull(t *testing.T) {
	b := New()
	ch, cancel := b.Channel(1)
	b.Publish(Event{Origin: "1", Payload: RowHover{TrackID: "a"}})
	b.Publish(Event{Origin: "2", Payload: RowHover{TrackID: "b"}})

	e := <-ch
	if e.Origin != "1" {
		t.Fatalf("origin = %q, want 1", e.Origin)
	}
	cancel()
	cancel()
	b.Publish(Event{Payload: ScaleChanged{}})
	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after cancel")
	}
}

func TestConditions(t *testing.T) {
	b := New()
	if b.Condition(StopMouseMoveHoveringHighlight) {
		t.Fatalf("condition set by default")
	}
	b.SetCondition(StopMouseMoveHoveringHighlight, true)
	if !b.Condition(StopMouseMoveHoveringHighlight) {
		t.Fatalf("condition not set")
	}
}
