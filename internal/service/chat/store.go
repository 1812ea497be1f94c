package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
)

// Store holds the ordered message list and the typing flag of one session.
type Store struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	hub      *Hub
	messages []chat.Message
	isTyping bool
	seq      uint64
}

// NewStore returns an empty store stamping messages with clock and notifying hub.
func NewStore(clock clockwork.Clock, hub *Hub) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if hub == nil {
		hub = NewHub()
	}
	return &Store{
		clock:    clock,
		hub:      hub,
		messages: make([]chat.Message, 0, 16),
	}
}

// AddMessage appends a new message and notifies observers. Content is not validated.
func (s *Store) AddMessage(content string, sender chat.Sender) chat.Message {
	s.mu.Lock()
	s.seq++
	message := chat.Message{
		ID:        newMessageID(),
		Seq:       s.seq,
		Sender:    sender,
		Content:   content,
		Timestamp: s.clock.Now(),
	}
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	published := message
	s.hub.Publish(Event{Kind: EventMessage, Message: &published, IsTyping: s.IsTyping()})
	return message
}

// SetIsTyping updates the typing flag and notifies observers.
func (s *Store) SetIsTyping(typing bool) {
	s.mu.Lock()
	s.isTyping = typing
	s.mu.Unlock()

	s.hub.Publish(Event{Kind: EventTyping, IsTyping: typing})
}

// IsTyping reports whether a simulated reply is pending.
func (s *Store) IsTyping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isTyping
}

// Messages returns a copy of the messages in display order.
func (s *Store) Messages() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.messages))
	copy(copied, s.messages)
	return copied
}

// Len returns the number of stored messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Reset empties the store as a fresh page load would.
func (s *Store) Reset() {
	s.mu.Lock()
	s.messages = make([]chat.Message, 0, 16)
	s.isTyping = false
	s.seq = 0
	s.mu.Unlock()

	s.hub.Publish(Event{Kind: EventReset})
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
