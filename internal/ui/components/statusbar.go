// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plumechat/plume-tui/internal/ui/styles"
	"github.com/plumechat/plume-tui/internal/util"
)

// StatusBar renders the single-line footer: server, chat count, key
// hints, and a transient error slot for transport failures.
type StatusBar struct {
	theme *styles.Theme

	serverURL string
	chatCount int
	errText   string
	width     int
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme, serverURL string) *StatusBar {
	return &StatusBar{theme: theme, serverURL: serverURL}
}

// SetWidth sets the render width.
func (b *StatusBar) SetWidth(width int) {
	b.width = width
}

// SetServerURL updates the displayed backend URL (config reload).
func (b *StatusBar) SetServerURL(url string) {
	b.serverURL = url
}

// SetChatCount updates the displayed chat count.
func (b *StatusBar) SetChatCount(n int) {
	b.chatCount = n
}

// SetError shows a transient error in place of the hints.
// Transport failures land here; they are not chat messages.
func (b *StatusBar) SetError(text string) {
	b.errText = text
}

// ClearError removes the transient error.
func (b *StatusBar) ClearError() {
	b.errText = ""
}

// View renders the bar.
func (b *StatusBar) View() string {
	if b.errText != "" {
		return b.theme.StatusError.Width(b.width).Render(
			styles.StatusIndicators.Error + " " + util.TruncateWidth(b.errText, b.width-6),
		)
	}

	left := fmt.Sprintf("%s · %d chats", b.serverURL, b.chatCount)

	hints := []string{
		b.hint("ctrl+n", "new"),
		b.hint("tab", "focus"),
		b.hint("ctrl+c", "quit"),
	}
	right := strings.Join(hints, "  ")

	gap := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return b.theme.StatusBar.Width(b.width).Render(util.TruncateWidth(left, b.width-2))
	}
	return b.theme.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *StatusBar) hint(key, desc string) string {
	return b.theme.ShortcutKey.Render(key) + " " + b.theme.ShortcutDesc.Render(desc)
}
