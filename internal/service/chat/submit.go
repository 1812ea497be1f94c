package chat

import (
	"context"
	"errors"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/widget"
)

// Reasons a submission was ignored.
const (
	ReasonEmpty   = "empty"
	ReasonPending = "pending"
)

// Submission reports what happened to submitted text.
type Submission struct {
	Accepted bool          `json:"accepted"`
	Reason   string        `json:"reason,omitempty"`
	Message  *chat.Message `json:"message,omitempty"`
}

// Submit runs text through an input control bound to the typing flag and, when
// it fires, sends the trimmed content. Ignored submissions change nothing.
func (s *Service) Submit(ctx context.Context, text string) Submission {
	var result Submission
	input := widget.NewInput(func(content string) {
		message, err := s.Send(ctx, content)
		switch {
		case errors.Is(err, ErrReplyPending):
			result.Reason = ReasonPending
		case err != nil:
			result.Reason = ReasonEmpty
		default:
			result.Accepted = true
			result.Message = &message
		}
	})
	input.SetDisabled(s.IsTyping())
	input.SetText(text)

	if !input.Submit() {
		result.Reason = ReasonEmpty
		if input.Disabled() {
			result.Reason = ReasonPending
		}
	}
	return result
}
