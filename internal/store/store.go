// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/storage"
)

// Persister saves and loads the whole session state.
// storage.StateFile is the production implementation.
type Persister interface {
	Save(*model.State) error
	Load() (*model.State, error)
}

// Store owns the in-memory session state and is its single writer.
// Every mutating operation persists the full state synchronously before
// returning, so the file on disk never lags the UI by more than the
// operation in flight.
type Store struct {
	mu        sync.Mutex
	state     *model.State
	persister Persister
}

// Open loads the persisted session, or starts a fresh one when no state
// exists yet. A session always holds at least one chat, so an empty or
// absent state gets an initial chat created and persisted immediately.
func Open(p Persister) (*Store, error) {
	state, err := p.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrStateNotFound) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		state = model.NewState()
	}

	s := &Store{state: state, persister: p}

	if len(state.Chats) == 0 {
		if _, err := s.CreateChat(); err != nil {
			return nil, err
		}
		return s, nil
	}

	// Heal a dangling current pointer from an older or hand-edited
	// blob rather than rendering nothing.
	if state.CurrentChat() == nil {
		state.CurrentChatID = state.Chats[0].ID
		if err := s.persist(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// persist writes the full state through the persister.
// Caller must hold no lock or the lock, consistently: all public
// mutators hold mu and call this at the end.
func (s *Store) persist() error {
	return s.persister.Save(s.state)
}

// CreateChat appends a new empty chat, makes it current, and persists.
// Returns the new chat's id.
func (s *Store) CreateChat() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := model.NewChat()
	s.state.Chats = append(s.state.Chats, chat)
	s.state.CurrentChatID = chat.ID

	if err := s.persist(); err != nil {
		return "", fmt.Errorf("failed to persist new chat: %w", err)
	}
	return chat.ID, nil
}

// SelectChat makes the chat with the given id current. Unknown ids are
// ignored; the selection only ever points at an existing chat.
func (s *Store) SelectChat(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.FindChat(id) == nil {
		return nil
	}
	if s.state.CurrentChatID == id {
		return nil
	}
	s.state.CurrentChatID = id
	return s.persist()
}

// AppendMessage adds a message to the chat with the given id.
// The first user message in a chat sets its title. Unknown chat ids are
// a silent no-op; this happens legitimately when a reply lands after
// its chat was deleted.
func (s *Store) AppendMessage(chatID string, msg model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.state.FindChat(chatID)
	if chat == nil {
		return nil
	}
	chat.Append(msg)
	return s.persist()
}

// RenameChat sets the chat's title. A title that is empty after
// trimming whitespace leaves the existing title untouched.
func (s *Store) RenameChat(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	chat := s.state.FindChat(id)
	if chat == nil {
		return nil
	}
	if chat.Title == title {
		return nil
	}
	chat.Title = title
	return s.persist()
}

// DeleteChat removes the chat with the given id. When the current chat
// is deleted the first remaining chat becomes current; deleting the
// last chat creates a fresh one, so the session never holds zero chats.
func (s *Store) DeleteChat(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.RemoveChat(id) {
		return nil
	}

	if len(s.state.Chats) == 0 {
		chat := model.NewChat()
		s.state.Chats = append(s.state.Chats, chat)
		s.state.CurrentChatID = chat.ID
	} else if s.state.CurrentChatID == id {
		s.state.CurrentChatID = s.state.Chats[0].ID
	}

	return s.persist()
}

// CurrentChat returns a pointer to the currently selected chat.
// Never nil after Open.
func (s *Store) CurrentChat() *model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentChat()
}

// CurrentID returns the id of the currently selected chat.
func (s *Store) CurrentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentChatID
}

// Chat returns the chat with the given id, or nil.
func (s *Store) Chat(id string) *model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.FindChat(id)
}

// Chats returns the chats in creation order. The slice is a copy; the
// chat pointers are shared, so callers treat them as read-only.
func (s *Store) Chats() []*model.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Chat, len(s.state.Chats))
	copy(out, s.state.Chats)
	return out
}

// Len returns the number of chats.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Chats)
}
