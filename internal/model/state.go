// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// State is the whole persisted session: every chat plus the identifier
// of the currently selected one. It serializes as a single JSON blob.
type State struct {
	Chats         []*Chat `json:"chats"`
	CurrentChatID string  `json:"currentChatId"`
}

// NewState returns an empty session state.
func NewState() *State {
	return &State{Chats: []*Chat{}}
}

// FindChat returns the chat with the given id, or nil.
func (s *State) FindChat(id string) *Chat {
	for _, c := range s.Chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// CurrentChat returns the currently selected chat, or nil when the
// current id is unset or dangling.
func (s *State) CurrentChat() *Chat {
	return s.FindChat(s.CurrentChatID)
}

// RemoveChat deletes the chat with the given id, preserving order of
// the remaining chats. Returns true if a chat was removed.
func (s *State) RemoveChat(id string) bool {
	for i, c := range s.Chats {
		if c.ID == id {
			s.Chats = append(s.Chats[:i], s.Chats[i+1:]...)
			return true
		}
	}
	return false
}
