package chat

import (
	"sync"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
)

// EventKind names a change observers can react to.
type EventKind string

const (
	EventMessage EventKind = "message"
	EventTyping  EventKind = "typing"
	EventScroll  EventKind = "scroll"
	EventReset   EventKind = "reset"
)

// Event describes a single session change.
type Event struct {
	Kind     EventKind     `json:"kind"`
	Message  *chat.Message `json:"message,omitempty"`
	IsTyping bool          `json:"isTyping"`
	Target   string        `json:"target,omitempty"`
}

// Listener receives events synchronously on the publishing goroutine.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Hub fans events out to listeners in subscription order.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers l and returns a function removing it.
func (h *Hub) Subscribe(l Listener) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscription{id: id, fn: l})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, sub := range h.subs {
		if sub.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers ev to every listener. No lock is held while listeners run,
// so a listener may publish or unsubscribe.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	subs := append([]subscription(nil), h.subs...)
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}

// Len reports the number of active listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
