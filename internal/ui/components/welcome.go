// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/plumechat/plume-tui/internal/ui/styles"
)

// RenderWelcome fills the message pane for a chat with no messages yet.
func RenderWelcome(theme *styles.Theme, width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.WelcomeTitle.Render("What can I help with?"),
		"",
		theme.WelcomeHint.Render("type a message and press enter"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
