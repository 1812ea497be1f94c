package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is one of the known senders.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

// Message is one immutable chat turn.
type Message struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// FromBot reports whether the message was produced by the simulated bot.
func (m Message) FromBot() bool {
	return m.Sender == SenderBot
}
