package chat

// Phase is the send/respond state of a session.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseAwaitingReply Phase = "awaiting_reply"
)

// State is a point-in-time copy of the session the view renders from.
type State struct {
	Messages []Message `json:"messages"`
	IsTyping bool      `json:"isTyping"`
	Phase    Phase     `json:"phase"`
}

// Latest returns the most recent message, if any.
func (s State) Latest() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}
