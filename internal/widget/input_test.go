package widget

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInput_Submit_Emits_Trimmed_Text_And_Clears(t *testing.T) {
	req := require.New(t)
	var sent []string
	in := NewInput(func(content string) { sent = append(sent, content) })

	in.SetText("  Hi there \n")
	req.True(in.Submit())

	req.Equal([]string{"Hi there"}, sent)
	req.Empty(in.Text())
}

func TestInput_Blank_Text_Is_Ignored(t *testing.T) {
	req := require.New(t)
	calls := 0
	in := NewInput(func(string) { calls++ })

	for _, text := range []string{"", " ", "\t\n"} {
		in.SetText(text)
		req.False(in.Submit())
		req.Equal(text, in.Text())
	}
	req.Zero(calls)
}

func TestInput_Disabled_Suppresses_Submission(t *testing.T) {
	req := require.New(t)
	calls := 0
	in := NewInput(func(string) { calls++ })

	in.SetDisabled(true)
	in.SetText("waiting")
	req.False(in.Submit())
	req.Zero(calls)
	req.Equal("waiting", in.Text(), "text survives a suppressed submit")

	in.SetDisabled(false)
	req.True(in.Submit())
	req.Equal(1, calls)
}
