// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/plumechat/plume-tui/internal/ui/components"
)

// chrome rows: header, attachment row slot, composer border, status bar.
const chromeHeight = 6

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// contentHeight is the height available to the sidebar and message pane.
func (m *Model) contentHeight() int {
	h := m.height - chromeHeight - m.composer.Height()
	if h < 3 {
		h = 3
	}
	return h
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.modal.Visible() {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, m.modal.View()),
			m.statusBar.View(),
		)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sidebar.View(m.focus == FocusSidebar),
		m.viewport.View(),
	)

	rows := []string{m.renderHeader(), main}
	if chips := m.attachments.View(m.focus == FocusAttachments); chips != "" {
		rows = append(rows, chips)
	}
	rows = append(rows, m.renderComposer(), m.statusBar.View())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderHeader() string {
	return m.theme.Header.Width(m.width).Render("plume")
}

func (m *Model) renderComposer() string {
	frame := m.theme.InputContainer
	if m.focus == FocusComposer {
		frame = m.theme.InputContainerFocused
	}
	return frame.Width(m.width - 2).Render(m.composer.View())
}

// refreshViewport re-renders the message pane from the store. The pane
// is a pure projection: messages in order, the reaction and copy state
// the UI holds for them, and the transient thinking placeholder.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	chat := m.store.CurrentChat()
	if chat == nil {
		m.viewport.SetContent("")
		return
	}

	if chat.IsEmpty() && !m.viewingPending() {
		m.viewport.SetContent(
			components.RenderWelcome(m.theme, m.viewport.Width, m.viewport.Height),
		)
		return
	}

	var b strings.Builder
	for i, msg := range chat.Messages {
		opts := components.MessageOpts{
			Selected:  m.focus == FocusMessages && i == m.msgCursor && !msg.IsUser,
			Reaction:  m.reactions.Get(chat.ID, i),
			CopyFlash: m.copyFlash[reactionKey(chat.ID, i)],
			Width:     m.viewport.Width,
			Highlight: m.cfg.UI.CodeHighlight,
		}
		b.WriteString(components.RenderMessage(m.theme, msg, opts))
		b.WriteString("\n\n")
	}

	if m.viewingPending() {
		b.WriteString(components.RenderThinking(m.theme, m.spinner.View()))
		b.WriteString("\n")
	}

	m.viewport.SetContent(b.String())
}
