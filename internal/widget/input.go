// Package widget holds UI state machines shared by every widget surface.
package widget

import "strings"

// SendFunc receives submitted content.
type SendFunc func(content string)

// Input keeps uncommitted text and emits it on submit while enabled.
type Input struct {
	text     string
	disabled bool
	onSend   SendFunc
}

// NewInput returns an enabled, empty input emitting to onSend.
func NewInput(onSend SendFunc) *Input {
	return &Input{onSend: onSend}
}

// SetText replaces the uncommitted text.
func (i *Input) SetText(text string) {
	i.text = text
}

// Text returns the uncommitted text.
func (i *Input) Text() string {
	return i.text
}

// SetDisabled toggles submission. Surfaces bind it to the typing flag.
func (i *Input) SetDisabled(disabled bool) {
	i.disabled = disabled
}

// Disabled reports whether submission is suppressed.
func (i *Input) Disabled() bool {
	return i.disabled
}

// Submit emits the trimmed text and clears it. It does nothing and returns
// false when disabled or when the text is blank.
func (i *Input) Submit() bool {
	if i.disabled {
		return false
	}

	content := strings.TrimSpace(i.text)
	if content == "" {
		return false
	}

	if i.onSend != nil {
		i.onSend(content)
	}
	i.text = ""
	return true
}
