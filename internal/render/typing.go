package render

import "github.com/zhouzirui/z-tavern/widget/internal/model/chat"

// DefaultTypingLabel is shown next to the dots while a reply is pending.
const DefaultTypingLabel = "AI is typing..."

const typingDots = "• • •"

// TypingIndicator is the decorative cue shown while the bot "types".
type TypingIndicator struct {
	Dots  string `json:"dots"`
	Label string `json:"label"`
}

func (t TypingIndicator) String() string {
	return t.Dots + " " + t.Label
}

// Typing returns the indicator when state is typing and nil otherwise.
func (r Renderer) Typing(state chat.State) *TypingIndicator {
	if !state.IsTyping {
		return nil
	}
	label := r.persona.Typing
	if label == "" {
		label = DefaultTypingLabel
	}
	return &TypingIndicator{Dots: typingDots, Label: label}
}
