// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTitle is the title given to a chat before its first
	// user message arrives.
	DefaultTitle = "New Chat"

	// TitleRunes is how many leading runes of the first user message
	// become the chat title before the ellipsis kicks in.
	TitleRunes = 30
)

// Chat is one conversation: an identifier, a display title, and an
// append-only message list.
type Chat struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
}

// NewChat creates an empty chat with a fresh collision-resistant ID
// and the default title.
func NewChat() *Chat {
	return &Chat{
		ID:       generateChatID(),
		Title:    DefaultTitle,
		Messages: []Message{},
	}
}

// generateChatID returns a unique chat identifier of the form
// "chat_<16 hex chars>".
//
// RELIABILITY: random IDs cannot collide the way clock-derived IDs do
// when two chats are created within the same timer tick.
func generateChatID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback for the pathological case where the system
		// entropy source is unavailable.
		return fmt.Sprintf("chat_%d", time.Now().UnixNano())
	}
	return "chat_" + hex.EncodeToString(b)
}

// Append adds a message to the chat. The first user message also sets
// the chat title; later messages never change it.
func (c *Chat) Append(msg Message) {
	first := msg.IsUser && !c.hasUserMessage()
	c.Messages = append(c.Messages, msg)
	if first {
		c.Title = TitleFromMessage(msg.Content)
	}
}

// hasUserMessage reports whether any user-authored message exists yet.
func (c *Chat) hasUserMessage() bool {
	for _, m := range c.Messages {
		if m.IsUser {
			return true
		}
	}
	return false
}

// TitleFromMessage derives a chat title from message content: the first
// TitleRunes runes, with "..." appended when the content is longer.
func TitleFromMessage(content string) string {
	runes := []rune(content)
	if len(runes) <= TitleRunes {
		return content
	}
	return string(runes[:TitleRunes]) + "..."
}

// MessageCount returns the number of messages in the chat.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true when the chat holds no messages.
func (c *Chat) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastMessage returns the most recent message, or a zero Message and
// false when the chat is empty.
func (c *Chat) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// Transcript renders the chat as a plain-text transcript with
// "User:" / "Assistant:" speaker labels, suitable for sharing.
func (c *Chat) Transcript() string {
	var b strings.Builder
	for _, m := range c.Messages {
		if m.IsUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}
