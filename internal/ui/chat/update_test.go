// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/config"
	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/storage"
	"github.com/plumechat/plume-tui/internal/store"
	"github.com/plumechat/plume-tui/internal/ui/components"
)

// stubSender records calls without touching the network.
type stubSender struct {
	reply   string
	sendErr error
	actions []api.Action
}

func (s *stubSender) Send(_ context.Context, chatID, message string) (string, error) {
	if s.sendErr != nil {
		return "", s.sendErr
	}
	return s.reply, nil
}

func (s *stubSender) LogAction(_ context.Context, action api.Action, _ string) error {
	s.actions = append(s.actions, action)
	return nil
}

func newTestModel(t *testing.T) (*Model, *store.Store, *stubSender) {
	t.Helper()

	st, err := store.Open(storage.NewStateFile(t.TempDir()))
	require.NoError(t, err)

	sender := &stubSender{reply: "assistant reply"}
	m := New(st, sender, nil, config.DefaultConfig(), nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, st, sender
}

func sendKey(m *Model, key tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(key)
	return cmd
}

func TestSubmitComposerAppendsUserMessageAndPends(t *testing.T) {
	m, st, _ := newTestModel(t)

	m.composer.SetValue("what is plume?")
	cmd := sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd, "send should produce a command")
	require.NotNil(t, m.pending)
	assert.Equal(t, st.CurrentID(), m.pending.chatID)

	chat := st.CurrentChat()
	require.Equal(t, 1, chat.MessageCount())
	assert.True(t, chat.Messages[0].IsUser)
	assert.Equal(t, "what is plume?", chat.Messages[0].Content)
	assert.Equal(t, "what is plume?", chat.Title)
	assert.Empty(t, m.composer.Value(), "composer clears on send")
}

func TestSubmitComposerIgnoresBlank(t *testing.T) {
	m, st, _ := newTestModel(t)

	m.composer.SetValue("   \n  ")
	cmd := sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Nil(t, m.pending)
	assert.True(t, st.CurrentChat().IsEmpty())
}

func TestSubmitComposerSingleFlight(t *testing.T) {
	m, st, _ := newTestModel(t)

	m.composer.SetValue("first")
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.composer.SetValue("second")
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})

	// Second send is ignored while the first is in flight.
	assert.Equal(t, 1, st.CurrentChat().MessageCount())
}

func TestReplyAppendsAssistantMessage(t *testing.T) {
	m, st, _ := newTestModel(t)
	chatID := st.CurrentID()
	require.NoError(t, st.AppendMessage(chatID, model.NewUserMessage("hi")))
	m.pending = &pendingSend{chatID: chatID}

	m.Update(ReplyMsg{ChatID: chatID, Reply: "hello!"})

	assert.Nil(t, m.pending, "placeholder must clear")
	chat := st.CurrentChat()
	require.Equal(t, 2, chat.MessageCount())
	last, _ := chat.LastMessage()
	assert.False(t, last.IsUser)
	assert.Equal(t, "hello!", last.Content)
}

func TestReplyWithBackendErrorBecomesErrorMessage(t *testing.T) {
	m, st, _ := newTestModel(t)
	chatID := st.CurrentID()
	require.NoError(t, st.AppendMessage(chatID, model.NewUserMessage("hi")))
	m.pending = &pendingSend{chatID: chatID}

	m.Update(ReplyMsg{ChatID: chatID, APIErr: "rate limit exceeded"})

	assert.Nil(t, m.pending)
	last, _ := st.CurrentChat().LastMessage()
	assert.False(t, last.IsUser)
	assert.Equal(t, "Error: rate limit exceeded", last.Content)
}

func TestReplyWithTransportErrorLeavesChatClean(t *testing.T) {
	m, st, _ := newTestModel(t)
	chatID := st.CurrentID()
	require.NoError(t, st.AppendMessage(chatID, model.NewUserMessage("hi")))
	m.pending = &pendingSend{chatID: chatID}

	cmd := m.handleReply(ReplyMsg{ChatID: chatID, Err: errors.New("connection refused")})

	// No dangling placeholder and no phantom assistant message; the
	// failure surfaces in the status bar instead.
	assert.Nil(t, m.pending)
	assert.Equal(t, 1, st.CurrentChat().MessageCount())
	assert.NotNil(t, cmd, "error flash timer should be scheduled")
}

func TestReplyForDeletedChatIsDropped(t *testing.T) {
	m, st, _ := newTestModel(t)
	chatID := st.CurrentID()
	m.pending = &pendingSend{chatID: chatID}

	require.NoError(t, st.DeleteChat(chatID))
	m.Update(ReplyMsg{ChatID: chatID, Reply: "too late"})

	// The store ignores appends to unknown ids; the fresh chat stays
	// untouched.
	assert.True(t, st.CurrentChat().IsEmpty())
}

func TestSendCmdMapsOutcomes(t *testing.T) {
	m, _, sender := newTestModel(t)

	msg := m.sendCmd("chat_1", "hi")()
	reply, ok := msg.(ReplyMsg)
	require.True(t, ok)
	assert.Equal(t, "assistant reply", reply.Reply)

	sender.sendErr = &api.APIError{Message: "model unavailable"}
	reply = m.sendCmd("chat_1", "hi")().(ReplyMsg)
	assert.Equal(t, "model unavailable", reply.APIErr)
	assert.NoError(t, reply.Err)

	sender.sendErr = api.ErrUnreachable
	reply = m.sendCmd("chat_1", "hi")().(ReplyMsg)
	assert.Error(t, reply.Err)
	assert.Empty(t, reply.APIErr)
}

func TestReactionToggleMutualExclusion(t *testing.T) {
	r := NewReactions()

	assert.Equal(t, components.ReactionLike, r.Toggle("c", 0, components.ReactionLike))
	// Dislike replaces like.
	assert.Equal(t, components.ReactionDislike, r.Toggle("c", 0, components.ReactionDislike))
	assert.Equal(t, components.ReactionDislike, r.Get("c", 0))
	// Repeating clears.
	assert.Equal(t, components.ReactionNone, r.Toggle("c", 0, components.ReactionDislike))
	assert.Equal(t, components.ReactionNone, r.Get("c", 0))

	// Independent per message position.
	r.Toggle("c", 1, components.ReactionLike)
	assert.Equal(t, components.ReactionNone, r.Get("c", 0))
	assert.Equal(t, components.ReactionLike, r.Get("c", 1))
}

func TestReactionGestureLogsAction(t *testing.T) {
	m, st, sender := newTestModel(t)
	chatID := st.CurrentID()
	require.NoError(t, st.AppendMessage(chatID, model.NewUserMessage("q")))
	require.NoError(t, st.AppendMessage(chatID, model.NewAssistantMessage("a")))

	m.focus = FocusMessages
	m.msgCursor = 1

	cmd := m.toggleReaction(st.CurrentChat(), components.ReactionLike, api.ActionLike)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, []api.Action{api.ActionLike}, sender.actions)

	// Clearing the reaction does not log again.
	cmd = m.toggleReaction(st.CurrentChat(), components.ReactionLike, api.ActionLike)
	assert.Nil(t, cmd)
}

func TestCopyFlashLifecycle(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(CopyResultMsg{Key: "c#1", OK: true})
	assert.Equal(t, components.CopyOk, m.copyFlash["c#1"])

	m.Update(copyClearMsg{Key: "c#1"})
	assert.Equal(t, components.CopyIdle, m.copyFlash["c#1"])
}

func TestComposerAutoGrow(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.composer.SetValue("one\ntwo\nthree")
	m.clampComposerHeight()
	assert.Equal(t, 3, m.composer.Height())

	// Grows only to the configured cap.
	m.composer.SetValue("1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12")
	m.clampComposerHeight()
	assert.Equal(t, m.cfg.UI.ComposerMaxLines, m.composer.Height())

	m.composer.Reset()
	m.clampComposerHeight()
	assert.Equal(t, 1, m.composer.Height())
}

func TestRenameModalFlow(t *testing.T) {
	m, st, _ := newTestModel(t)
	chatID := st.CurrentID()

	m.openRename(chatID)
	require.True(t, m.modal.Visible())
	assert.Equal(t, model.DefaultTitle, m.modal.Title())

	// Esc closes without change.
	sendKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.modal.Visible())
	assert.Equal(t, model.DefaultTitle, st.Chat(chatID).Title)

	// Enter with a new title renames.
	m.openRename(chatID)
	m.modal.ShowRename(chatID, "Renamed")
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.modal.Visible())
	assert.Equal(t, "Renamed", st.Chat(chatID).Title)
}

func TestDeleteModalNeedsArming(t *testing.T) {
	m, st, _ := newTestModel(t)
	first := st.CurrentID()
	second, err := st.CreateChat()
	require.NoError(t, err)
	_ = second

	m.openConfirmDelete(first)
	require.True(t, m.modal.Visible())

	// Enter on the default (cancel) button deletes nothing.
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.modal.Visible())
	assert.Equal(t, 2, st.Len())

	// Tab to arm, then enter deletes.
	m.openConfirmDelete(first)
	sendKey(m, tea.KeyMsg{Type: tea.KeyTab})
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, st.Len())
	assert.Nil(t, st.Chat(first))
}

func TestNewChatShortcut(t *testing.T) {
	m, st, _ := newTestModel(t)
	before := st.CurrentID()

	sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlN})

	assert.Equal(t, 2, st.Len())
	assert.NotEqual(t, before, st.CurrentID())
	assert.Equal(t, FocusComposer, m.focus)
}

func TestAttachmentsNeverReachTransmit(t *testing.T) {
	m, st, _ := newTestModel(t)

	m.composer.SetValue("/tmp/notes.txt")
	sendKey(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, 1, m.attachments.Count())
	assert.Empty(t, m.composer.Value())

	m.composer.SetValue("look at my file")
	sendKey(m, tea.KeyMsg{Type: tea.KeyEnter})

	// Chips clear on send and the stored message carries no trace of
	// the attachment.
	assert.True(t, m.attachments.Empty())
	assert.Equal(t, "look at my file", st.CurrentChat().Messages[0].Content)
}
