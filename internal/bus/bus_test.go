package bus

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestBus() *Bus {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription channel closed unexpectedly")
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	b := newTestBus()
	first := b.Subscribe("v1")
	second := b.Subscribe("v1")

	b.Publish("v1", Event{Type: AttendantAdded, VenueID: "v1"})

	for _, sub := range []*Subscription{first, second} {
		event := receive(t, sub)
		if event.Type != AttendantAdded {
			t.Fatalf("expected attendant-added, got %s", event.Type)
		}
		if event.VenueID != "v1" {
			t.Fatalf("expected venueId v1, got %s", event.VenueID)
		}
	}
}

func TestEventsScopedToVenue(t *testing.T) {
	b := newTestBus()
	v1 := b.Subscribe("v1")
	v2 := b.Subscribe("v2")

	b.Publish("v1", Event{Type: ChatterPosted, VenueID: "v1"})

	receive(t, v1)

	select {
	case event := <-v2.Events():
		t.Fatalf("subscriber of v2 received event for %s", event.VenueID)
	default:
	}
}

func TestEventsDeliveredInPublishOrder(t *testing.T) {
	b := newTestBus()
	sub := b.Subscribe("v1")

	types := []EventType{AttendantAdded, ChatterPosted, AttendantRemoved, AttendantAdded}
	for i, eventType := range types {
		b.Publish("v1", Event{Type: eventType, VenueID: "v1", Body: string(rune('a' + i))})
	}

	for i, want := range types {
		event := receive(t, sub)
		if event.Type != want {
			t.Fatalf("event %d: expected %s, got %s", i, want, event.Type)
		}
	}
}

func TestLateSubscriberSeesNothing(t *testing.T) {
	b := newTestBus()
	b.Publish("v1", Event{Type: AttendantAdded, VenueID: "v1"})

	sub := b.Subscribe("v1")
	select {
	case <-sub.Events():
		t.Fatal("late subscriber received an event published before subscribing")
	default:
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := newTestBus()
	sub := b.Subscribe("v1")

	b.Unsubscribe(sub)
	b.Unsubscribe(sub)

	if _, ok := <-sub.Events(); ok {
		t.Fatal("expected channel closed after unsubscribe")
	}

	// A publish after unsubscribe must not panic or deliver.
	b.Publish("v1", Event{Type: ChatterPosted, VenueID: "v1"})
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := newTestBus()
	sub := b.Subscribe("v1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriptionBuffer*2; i++ {
			b.Publish("v1", Event{Type: ChatterPosted, VenueID: "v1"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	if got := len(sub.Events()); got != subscriptionBuffer {
		t.Fatalf("expected %d buffered events, got %d", subscriptionBuffer, got)
	}
}
