package render

import "github.com/zhouzirui/z-tavern/widget/internal/model/chat"

// View is everything a surface needs to draw the widget.
type View struct {
	Title         string           `json:"title"`
	Tagline       string           `json:"tagline"`
	Rows          []Row            `json:"rows"`
	Typing        *TypingIndicator `json:"typing,omitempty"`
	InputDisabled bool             `json:"inputDisabled"`
	LatestID      string           `json:"latestId,omitempty"`
}

// View composes rows, the typing indicator and the input state.
func (r Renderer) View(state chat.State) View {
	view := View{
		Title:         r.persona.Title,
		Tagline:       r.persona.Tagline,
		Rows:          r.Rows(state.Messages),
		Typing:        r.Typing(state),
		InputDisabled: state.IsTyping,
	}
	if latest, ok := state.Latest(); ok {
		view.LatestID = latest.ID
	}
	return view
}
