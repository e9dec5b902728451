// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/ui/styles"
)

// Reaction is the like/dislike state of one assistant message.
// Render state only; it is never persisted with the chat.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionLike
	ReactionDislike
)

// CopyFlash is the transient state of the copy indicator.
type CopyFlash int

const (
	CopyIdle CopyFlash = iota
	CopyOk
	CopyFailed
)

// MessageOpts carries per-message render state owned by the UI.
type MessageOpts struct {
	Selected  bool
	Reaction  Reaction
	CopyFlash CopyFlash
	Width     int
	Highlight bool
}

// errorPrefix marks assistant messages that relay a backend error.
const errorPrefix = "Error: "

// RenderMessage renders one message bubble, plus the action bar for
// assistant messages.
func RenderMessage(theme *styles.Theme, msg model.Message, opts MessageOpts) string {
	maxBubble := opts.Width - 8
	if maxBubble < 20 {
		maxBubble = 20
	}

	content := msg.Content
	if !msg.IsUser && opts.Highlight {
		content = HighlightCodeBlocks(content, theme.ChromaStyle())
	}

	var bubble string
	switch {
	case msg.IsUser:
		rendered := theme.UserBubble.MaxWidth(maxBubble).Render(content)
		bubble = lipgloss.PlaceHorizontal(opts.Width, lipgloss.Right, rendered)
	case strings.HasPrefix(msg.Content, errorPrefix):
		bubble = theme.ErrorBubble.MaxWidth(maxBubble).Render(content)
	default:
		bubble = theme.AssistantBubble.MaxWidth(maxBubble).Render(content)
	}

	parts := []string{bubble}
	if !msg.IsUser {
		parts = append(parts, renderActionBar(theme, opts))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if opts.Selected {
		out = theme.MessageSelected.Render(out)
	}
	return out
}

// renderActionBar renders the affordance row under an assistant
// message: like, dislike, copy, and the disabled model-switch slot.
func renderActionBar(theme *styles.Theme, opts MessageOpts) string {
	like := theme.ActionItem.Render("+ like")
	if opts.Reaction == ReactionLike {
		like = theme.ActionActive.Render("+ liked")
	}

	dislike := theme.ActionItem.Render("- dislike")
	if opts.Reaction == ReactionDislike {
		dislike = theme.ActionActive.Render("- disliked")
	}

	copyItem := theme.ActionItem.Render("y copy")
	switch opts.CopyFlash {
	case CopyOk:
		copyItem = theme.ActionOk.Render("y copied " + styles.StatusIndicators.Success)
	case CopyFailed:
		copyItem = theme.ActionFail.Render("y copy " + styles.StatusIndicators.Error)
	}

	// Model switching is a visible placeholder, deliberately inert.
	modelItem := theme.ActionDisabled.Render("model")

	return theme.ActionBar.Render(
		strings.Join([]string{like, dislike, copyItem, modelItem}, "  "),
	)
}

// RenderThinking renders the transient waiting placeholder shown while
// a reply is in flight. It lives only in the view; it is never a
// message in the store.
func RenderThinking(theme *styles.Theme, spinnerView string) string {
	return theme.AssistantBubble.Render(
		spinnerView + " " + theme.ThinkingText.Render("Thinking..."),
	)
}
