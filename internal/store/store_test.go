// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/storage"
)

// memPersister is an in-memory Persister that counts saves, so tests
// can assert that operations persist synchronously.
type memPersister struct {
	state   *model.State
	saves   int
	saveErr error
}

func (p *memPersister) Save(s *model.State) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.state = s
	return nil
}

func (p *memPersister) Load() (*model.State, error) {
	if p.state == nil {
		return nil, storage.ErrStateNotFound
	}
	return p.state, nil
}

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{}
	s, err := Open(p)
	require.NoError(t, err)
	return s, p
}

func TestOpenFreshSessionCreatesChat(t *testing.T) {
	s, p := newTestStore(t)

	assert.Equal(t, 1, s.Len())
	current := s.CurrentChat()
	require.NotNil(t, current)
	assert.Equal(t, model.DefaultTitle, current.Title)
	assert.True(t, current.IsEmpty())
	assert.Equal(t, 1, p.saves, "initial chat must be persisted")
}

func TestOpenExistingSession(t *testing.T) {
	state := model.NewState()
	a, b := model.NewChat(), model.NewChat()
	state.Chats = append(state.Chats, a, b)
	state.CurrentChatID = b.ID

	s, err := Open(&memPersister{state: state})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, b.ID, s.CurrentID())
}

func TestOpenHealsDanglingCurrentID(t *testing.T) {
	state := model.NewState()
	a := model.NewChat()
	state.Chats = append(state.Chats, a)
	state.CurrentChatID = "chat_gone"

	s, err := Open(&memPersister{state: state})
	require.NoError(t, err)
	assert.Equal(t, a.ID, s.CurrentID())
}

func TestCreateChatBecomesCurrent(t *testing.T) {
	s, p := newTestStore(t)
	before := p.saves

	id, err := s.CreateChat()
	require.NoError(t, err)

	assert.Equal(t, id, s.CurrentID())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, before+1, p.saves)
}

func TestSelectChat(t *testing.T) {
	s, p := newTestStore(t)
	first := s.CurrentID()
	second, err := s.CreateChat()
	require.NoError(t, err)

	require.NoError(t, s.SelectChat(first))
	assert.Equal(t, first, s.CurrentID())

	// Unknown id leaves selection untouched and does not persist.
	saves := p.saves
	require.NoError(t, s.SelectChat("chat_missing"))
	assert.Equal(t, first, s.CurrentID())
	assert.Equal(t, saves, p.saves)

	require.NoError(t, s.SelectChat(second))
	assert.Equal(t, second, s.CurrentID())
}

func TestAppendMessageSetsTitleFromFirstUserMessage(t *testing.T) {
	s, _ := newTestStore(t)
	id := s.CurrentID()

	long := strings.Repeat("q", 40)
	require.NoError(t, s.AppendMessage(id, model.NewUserMessage(long)))

	chat := s.Chat(id)
	assert.Equal(t, strings.Repeat("q", 30)+"...", chat.Title)

	require.NoError(t, s.AppendMessage(id, model.NewUserMessage("later")))
	assert.Equal(t, strings.Repeat("q", 30)+"...", chat.Title, "title set only once")
}

func TestAppendMessageUnknownChatIsNoOp(t *testing.T) {
	s, p := newTestStore(t)
	saves := p.saves

	require.NoError(t, s.AppendMessage("chat_missing", model.NewUserMessage("hi")))
	assert.Equal(t, saves, p.saves)
	assert.True(t, s.CurrentChat().IsEmpty())
}

func TestRenameChat(t *testing.T) {
	s, p := newTestStore(t)
	id := s.CurrentID()

	require.NoError(t, s.RenameChat(id, "  Project notes  "))
	assert.Equal(t, "Project notes", s.Chat(id).Title)

	// Empty and whitespace-only titles are rejected without persisting.
	saves := p.saves
	require.NoError(t, s.RenameChat(id, ""))
	require.NoError(t, s.RenameChat(id, "   \t "))
	assert.Equal(t, "Project notes", s.Chat(id).Title)
	assert.Equal(t, saves, p.saves)
}

func TestDeleteCurrentChatSelectsFirstRemaining(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.CurrentID()
	second, err := s.CreateChat()
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat(second))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, first, s.CurrentID())
}

func TestDeleteOnlyChatCreatesFreshOne(t *testing.T) {
	s, _ := newTestStore(t)
	only := s.CurrentID()
	require.NoError(t, s.AppendMessage(only, model.NewUserMessage("about to vanish")))

	require.NoError(t, s.DeleteChat(only))

	assert.Equal(t, 1, s.Len())
	fresh := s.CurrentChat()
	require.NotNil(t, fresh)
	assert.NotEqual(t, only, fresh.ID)
	assert.Equal(t, model.DefaultTitle, fresh.Title)
	assert.True(t, fresh.IsEmpty())
}

func TestDeleteNonCurrentChatKeepsSelection(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.CurrentID()
	second, err := s.CreateChat()
	require.NoError(t, err)

	require.NoError(t, s.DeleteChat(first))
	assert.Equal(t, second, s.CurrentID())
}

func TestDeleteUnknownChatIsNoOp(t *testing.T) {
	s, p := newTestStore(t)
	saves := p.saves

	require.NoError(t, s.DeleteChat("chat_missing"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, saves, p.saves)
}

func TestPersistFailurePropagates(t *testing.T) {
	s, p := newTestStore(t)
	p.saveErr = errors.New("disk full")

	_, err := s.CreateChat()
	assert.Error(t, err)
}

func TestChatsReturnsCreationOrder(t *testing.T) {
	s, _ := newTestStore(t)
	first := s.CurrentID()
	second, _ := s.CreateChat()
	third, _ := s.CreateChat()

	chats := s.Chats()
	require.Len(t, chats, 3)
	assert.Equal(t, first, chats[0].ID)
	assert.Equal(t, second, chats[1].ID)
	assert.Equal(t, third, chats[2].ID)
}
