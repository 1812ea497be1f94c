package chat_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
	chatservice "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/service/chat/mocks"
)

var canned = []string{"first reply", "second reply", "third reply"}

type fixedRandom int

func (f fixedRandom) IntN(n int) int { return int(f) % n }

func newOrchestrator(t *testing.T, scroller chatservice.Scroller) (*chatservice.Orchestrator, *chatservice.Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := chatservice.NewStore(clock, chatservice.NewHub())
	o := chatservice.NewOrchestrator(store, chatservice.OrchestratorConfig{
		Clock:     clock,
		Delay:     chatservice.DefaultReplyDelay,
		Responses: canned,
		Random:    fixedRandom(1),
		Scroller:  scroller,
	})
	t.Cleanup(o.Close)
	return o, store, clock
}

func Test_Send_Appends_User_Message_And_Raises_Typing(t *testing.T) {
	req := require.New(t)
	o, store, _ := newOrchestrator(t, nil)
	store.AddMessage("earlier", chat.SenderBot)

	msg, err := o.Send("Hi there")
	req.NoError(err)

	messages := store.Messages()
	req.Len(messages, 2)
	req.Equal(msg, messages[1])
	req.Equal(chat.SenderUser, messages[1].Sender)
	req.Equal("Hi there", messages[1].Content)
	req.True(store.IsTyping())
	req.Equal(chat.PhaseAwaitingReply, o.Phase())
}

func Test_Blank_Send_Changes_Nothing(t *testing.T) {
	req := require.New(t)
	o, store, _ := newOrchestrator(t, nil)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := o.Send(content)
		req.ErrorIs(err, chatservice.ErrEmptyContent)
	}

	req.Zero(store.Len())
	req.False(store.IsTyping())
	req.Equal(chat.PhaseIdle, o.Phase())
}

func Test_Typing_Holds_Until_Delay_Elapses(t *testing.T) {
	req := require.New(t)
	o, store, clock := newOrchestrator(t, nil)

	_, err := o.Send("question")
	req.NoError(err)

	clock.Advance(chatservice.DefaultReplyDelay - time.Millisecond)
	req.True(store.IsTyping())
	req.Equal(1, store.Len())

	clock.Advance(time.Millisecond)
	req.Eventually(func() bool { return !store.IsTyping() }, time.Second, time.Millisecond)

	messages := store.Messages()
	req.Len(messages, 2)
	req.Equal(chat.SenderBot, messages[1].Sender)
	req.Equal("second reply", messages[1].Content)
	req.Greater(messages[1].Seq, messages[0].Seq)
	req.Equal(chat.PhaseIdle, o.Phase())
}

func Test_Send_While_Awaiting_Reply_Is_Ignored(t *testing.T) {
	req := require.New(t)
	o, store, clock := newOrchestrator(t, nil)

	_, err := o.Send("one")
	req.NoError(err)

	_, err = o.Send("two")
	req.True(errors.Is(err, chatservice.ErrReplyPending))
	req.Equal(1, store.Len())
	req.True(store.IsTyping())

	clock.Advance(chatservice.DefaultReplyDelay)
	req.Eventually(func() bool { return !store.IsTyping() }, time.Second, time.Millisecond)
	req.Equal(2, store.Len(), "exactly one bot reply for one accepted send")

	_, err = o.Send("three")
	req.NoError(err)
	req.Equal(3, store.Len())
}

func Test_Scrolls_To_Every_Appended_Message(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	scroller := mocks.NewMockScroller(ctrl)
	o, store, clock := newOrchestrator(t, scroller)

	var mu sync.Mutex
	var scrolled []string
	scroller.EXPECT().ScrollTo(gomock.Any()).Times(2).Do(func(id string) {
		mu.Lock()
		defer mu.Unlock()
		scrolled = append(scrolled, id)
	})

	user, err := o.Send("scroll me")
	req.NoError(err)

	clock.Advance(chatservice.DefaultReplyDelay)
	req.Eventually(func() bool { return !store.IsTyping() }, time.Second, time.Millisecond)

	messages := store.Messages()
	mu.Lock()
	defer mu.Unlock()
	req.Equal([]string{user.ID, messages[1].ID}, scrolled)
}

func Test_Reset_Drops_Pending_Reply(t *testing.T) {
	req := require.New(t)
	o, store, clock := newOrchestrator(t, nil)

	_, err := o.Send("never answered")
	req.NoError(err)

	o.Reset()
	clock.Advance(chatservice.DefaultReplyDelay)

	req.Never(func() bool { return store.Len() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	req.False(store.IsTyping())
	req.Equal(chat.PhaseIdle, o.Phase())
}

func Test_Empty_Responses_Fall_Back_To_Default_Replies(t *testing.T) {
	req := require.New(t)
	clock := clockwork.NewFakeClock()
	store := chatservice.NewStore(clock, chatservice.NewHub())
	o := chatservice.NewOrchestrator(store, chatservice.OrchestratorConfig{Clock: clock})
	t.Cleanup(o.Close)

	_, err := o.Send("hello")
	req.NoError(err)
	clock.Advance(chatservice.DefaultReplyDelay)
	req.Eventually(func() bool { return !store.IsTyping() }, time.Second, time.Millisecond)

	reply := store.Messages()[1]
	req.NotEmpty(reply.Content)
	req.Contains(persona.Seed()[0].Responses, reply.Content)
}

func Test_Close_Clears_Pending_Reply(t *testing.T) {
	req := require.New(t)
	clock := clockwork.NewFakeClock()
	store := chatservice.NewStore(clock, chatservice.NewHub())
	o := chatservice.NewOrchestrator(store, chatservice.OrchestratorConfig{Clock: clock, Responses: canned})

	_, err := o.Send("left hanging")
	req.NoError(err)
	o.Close()
	clock.Advance(chatservice.DefaultReplyDelay)

	req.Never(func() bool { return store.Len() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	req.False(store.IsTyping())
	req.Equal(chat.PhaseIdle, o.Phase())
}
