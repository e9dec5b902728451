// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// Message represents a single message inside a chat.
//
// The JSON field names are load-bearing: they match the state blob layout
// that earlier plume builds persisted, so existing state files keep
// loading across upgrades.
type Message struct {
	// Content is the message text.
	Content string `json:"content"`

	// IsUser is true for messages typed by the user, false for
	// assistant replies (including error replies).
	IsUser bool `json:"isUser"`
}

// NewUserMessage creates a message authored by the user.
func NewUserMessage(content string) Message {
	return Message{Content: content, IsUser: true}
}

// NewAssistantMessage creates a message authored by the assistant.
func NewAssistantMessage(content string) Message {
	return Message{Content: content, IsUser: false}
}

// Preview returns a single-line preview of the message content,
// truncated to maxLen runes with an ellipsis.
// UNICODE: rune-based truncation never splits a multi-byte character.
func (m Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.Content, "\n", " ")
	content = strings.TrimSpace(content)

	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}
