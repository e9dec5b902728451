// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/plumechat/plume-tui/internal/ui/components"
)

// Reactions tracks like/dislike state per message. Keys are
// chatID#index, so reactions follow messages across chat switches but
// vanish with the session; they are render state, never persisted.
type Reactions map[string]components.Reaction

// NewReactions creates an empty reaction table.
func NewReactions() Reactions {
	return make(Reactions)
}

// reactionKey builds the table key for a message position.
func reactionKey(chatID string, index int) string {
	return fmt.Sprintf("%s#%d", chatID, index)
}

// Toggle applies a like or dislike gesture and returns the resulting
// state. Repeating a gesture clears it; the opposite gesture replaces
// it, so like and dislike are mutually exclusive.
func (r Reactions) Toggle(chatID string, index int, gesture components.Reaction) components.Reaction {
	key := reactionKey(chatID, index)
	if r[key] == gesture {
		delete(r, key)
		return components.ReactionNone
	}
	r[key] = gesture
	return gesture
}

// Get returns the reaction for a message position.
func (r Reactions) Get(chatID string, index int) components.Reaction {
	return r[reactionKey(chatID, index)]
}
