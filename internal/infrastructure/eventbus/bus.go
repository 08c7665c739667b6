package eventbus

import (
	"sync"
)

// Kind tags the event variants so handlers can match exhaustively.
type Kind string

const (
	MessagesRead   Kind = "messages-read"
	NewMessage     Kind = "new-message"
	ProfileUpdated Kind = "profile-updated"
)

// Event carries no payload beyond its kind. Rapid emissions may be coalesced
// by subscribers, so handlers must re-query whatever state they need instead
// of trusting the event itself.
type Event struct {
	Kind Kind
}

// Bus is an intra-process publish/subscribe bus. Handlers run synchronously
// on the publisher's goroutine; subscribers that need I/O should only flag
// work and do the fetching on their own schedule.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Kind]map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[Kind]map[int]func(Event)),
	}
}

// Subscribe registers a handler for one event kind and returns the
// unsubscribe function.
func (b *Bus) Subscribe(kind Kind, handler func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]func(Event))
	}
	id := b.nextID
	b.nextID++
	b.subs[kind][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[kind], id)
	}
}

func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.subs[event.Kind]))
	for _, h := range b.subs[event.Kind] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
