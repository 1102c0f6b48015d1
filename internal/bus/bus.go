// Package bus is the in-process presence event bus. It fans attendance and
// chatter events out to every live subscription for a venue, best-effort and
// at-most-once: nothing is persisted, replayed, or retried, and a subscriber
// that falls behind loses events rather than blocking publishers.
package bus

import (
	"log/slog"
	"sync"
)

type EventType string

const (
	AttendantAdded   EventType = "attendant-added"
	AttendantRemoved EventType = "attendant-removed"
	ChatterPosted    EventType = "chatter-posted"
)

// Event is one state change on a venue, in the wire shape clients receive.
type Event struct {
	Type    EventType `json:"type"`
	VenueID string    `json:"venueId"`
	Author  string    `json:"author,omitempty"`
	Body    string    `json:"body,omitempty"`
}

// subscriptionBuffer bounds how far a subscriber may lag before events are
// dropped for it.
const subscriptionBuffer = 64

// Subscription is a live, venue-scoped event feed. It starts at the moment
// of subscription; a late subscriber sees nothing that happened before.
type Subscription struct {
	venueID string
	ch      chan Event
	closed  bool
}

// Events yields the subscription's feed. The channel is closed by
// Unsubscribe and never by the subscriber.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

func (s *Subscription) VenueID() string {
	return s.venueID
}

// room holds one venue's subscriber set. Rooms are the unit of locking so
// traffic on one venue never serializes against another.
type room struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

type Bus struct {
	mu     sync.RWMutex
	rooms  map[string]*room
	logger *slog.Logger
}

func New(logger *slog.Logger) *Bus {
	return &Bus{
		rooms:  make(map[string]*room),
		logger: logger,
	}
}

func (b *Bus) roomFor(venueID string, create bool) *room {
	b.mu.RLock()
	r := b.rooms[venueID]
	b.mu.RUnlock()
	if r != nil || !create {
		return r
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if r = b.rooms[venueID]; r == nil {
		r = &room{subs: make(map[*Subscription]struct{})}
		b.rooms[venueID] = r
	}
	return r
}

func (b *Bus) Subscribe(venueID string) *Subscription {
	sub := &Subscription{
		venueID: venueID,
		ch:      make(chan Event, subscriptionBuffer),
	}
	r := b.roomFor(venueID, true)
	r.mu.Lock()
	r.subs[sub] = struct{}{}
	r.mu.Unlock()
	return sub
}

// Unsubscribe stops delivery and closes the subscription's channel. Calling
// it more than once is harmless.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	r := b.roomFor(sub.venueID, false)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.closed {
		return
	}
	delete(r.subs, sub)
	sub.closed = true
	close(sub.ch)
}

// Publish delivers the event to every live subscription for the venue.
// Holding the room lock for the whole delivery keeps events on one venue
// FIFO per subscriber; a full subscriber buffer drops the event for that
// subscriber only.
func (b *Bus) Publish(venueID string, event Event) {
	r := b.roomFor(venueID, false)
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.subs {
		select {
		case sub.ch <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"venue_id", venueID,
				"event_type", event.Type,
			)
		}
	}
}
