package persona

// DefaultID identifies the assistant persona shipped with the widget.
const DefaultID = "assistant"

// Persona captures the bot identity and its canned replies exposed to the widget.
type Persona struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Tagline   string   `json:"tagline"`
	Typing    string   `json:"typing"`
	Responses []string `json:"responses"`
}

// Seed provides the default assistant persona.
func Seed() []Persona {
	return []Persona{
		{
			ID:      DefaultID,
			Name:    "AI Assistant",
			Title:   "AI Chat Assistant",
			Tagline: "Ask me anything!",
			Typing:  "AI is typing...",
			Responses: []string{
				"Hello! How can I assist you today?",
				"That's an interesting question. Let me help you with that.",
				"I understand your concern. Here's what you can do...",
				"Could you please provide more details about your question?",
				"I'm here to help! What would you like to know?",
			},
		},
	}
}

// WithResponses returns a copy of p answering with the supplied replies.
// An empty list keeps the persona's own replies.
func (p Persona) WithResponses(responses []string) Persona {
	if len(responses) == 0 {
		return p
	}
	p.Responses = append([]string(nil), responses...)
	return p
}
