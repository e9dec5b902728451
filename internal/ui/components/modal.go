// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plumechat/plume-tui/internal/ui/styles"
)

// ModalMode is what the modal is currently doing.
type ModalMode int

const (
	// ModalHidden means no modal is showing.
	ModalHidden ModalMode = iota
	// ModalRename shows the rename input.
	ModalRename
	// ModalConfirmDelete shows the delete confirmation.
	ModalConfirmDelete
)

// Modal is the single modal instance for the whole application. It is
// created once and re-armed per use; rename and delete flows share it.
type Modal struct {
	theme *styles.Theme

	mode   ModalMode
	chatID string

	input textinput.Model

	// confirmDelete is true when the destructive button is highlighted.
	confirmDelete bool
	deleteTitle   string

	width int
}

// NewModal creates the modal in hidden state.
func NewModal(theme *styles.Theme) *Modal {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Prompt = "> "

	return &Modal{theme: theme, input: ti}
}

// SetWidth sets the terminal width used for centering.
func (m *Modal) SetWidth(width int) {
	m.width = width
}

// Mode returns the current modal mode.
func (m *Modal) Mode() ModalMode {
	return m.mode
}

// Visible reports whether any modal is showing.
func (m *Modal) Visible() bool {
	return m.mode != ModalHidden
}

// ChatID returns the chat the open modal refers to.
func (m *Modal) ChatID() string {
	return m.chatID
}

// ShowRename opens the rename input pre-filled with the current title.
func (m *Modal) ShowRename(chatID, currentTitle string) {
	m.mode = ModalRename
	m.chatID = chatID
	m.input.SetValue(currentTitle)
	m.input.CursorEnd()
	m.input.Focus()
}

// ShowConfirmDelete opens the delete confirmation. The cancel button
// starts highlighted so a double-tap of enter cannot destroy a chat.
func (m *Modal) ShowConfirmDelete(chatID, title string) {
	m.mode = ModalConfirmDelete
	m.chatID = chatID
	m.deleteTitle = title
	m.confirmDelete = false
}

// Hide closes the modal without any effect.
func (m *Modal) Hide() {
	m.mode = ModalHidden
	m.chatID = ""
	m.input.Blur()
}

// Title returns the text currently in the rename input.
func (m *Modal) Title() string {
	return m.input.Value()
}

// DeleteConfirmed reports whether the destructive button is highlighted.
func (m *Modal) DeleteConfirmed() bool {
	return m.confirmDelete
}

// ToggleDeleteButton flips the highlighted confirmation button.
func (m *Modal) ToggleDeleteButton() {
	m.confirmDelete = !m.confirmDelete
}

// Update forwards key events to the rename input.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if m.mode != ModalRename {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the modal box, or empty when hidden.
func (m *Modal) View() string {
	switch m.mode {
	case ModalRename:
		return m.renderRename()
	case ModalConfirmDelete:
		return m.renderConfirmDelete()
	default:
		return ""
	}
}

func (m *Modal) renderRename() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.ModalTitle.Render("Rename chat"),
		"",
		m.input.View(),
		"",
		m.theme.ModalHint.Render("enter save · esc cancel"),
	)
	return m.center(m.theme.ModalBox.Render(content))
}

func (m *Modal) renderConfirmDelete() string {
	cancel := m.theme.ModalButtonActive.Render("Cancel")
	del := m.theme.ModalButton.Render("Delete")
	if m.confirmDelete {
		cancel = m.theme.ModalButton.Render("Cancel")
		del = m.theme.ModalDanger.Render("Delete")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.ModalTitle.Render("Delete chat?"),
		"",
		m.theme.ModalHint.Render(m.deleteTitle),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", del),
		"",
		m.theme.ModalHint.Render("tab switch · enter confirm · esc cancel"),
	)
	return m.center(m.theme.ModalBox.Render(content))
}

func (m *Modal) center(box string) string {
	if m.width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
}
