// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case spinner.TickMsg:
		if m.pending == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshViewport()
		return m, cmd

	case ReplyMsg:
		return m, m.handleReply(msg)

	case CopyResultMsg:
		if msg.OK {
			m.copyFlash[msg.Key] = components.CopyOk
		} else {
			m.copyFlash[msg.Key] = components.CopyFailed
			m.logger.Warn("clipboard write failed", "key", msg.Key)
		}
		m.refreshViewport()
		return m, copyClearCmd(msg.Key)

	case copyClearMsg:
		delete(m.copyFlash, msg.Key)
		m.refreshViewport()
		return m, nil

	case errClearMsg:
		m.statusBar.ClearError()
		return m, nil

	case actionLoggedMsg:
		if msg.err != nil {
			m.logger.Warn("action log failed", "action", msg.action, "err", msg.err)
		}
		return m, nil

	case ConfigReloadedMsg:
		m.cfg = msg.Cfg
		m.statusBar.SetServerURL(msg.Cfg.Server.URL)
		m.clampComposerHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleResize lays the panes out for a new terminal size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	sidebarWidth := m.cfg.UI.SidebarWidth
	if sidebarWidth > msg.Width/3 {
		sidebarWidth = msg.Width / 3
	}
	m.sidebar.SetSize(sidebarWidth, m.contentHeight())
	m.modal.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)

	paneWidth := msg.Width - sidebarWidth - 2
	m.viewport = newViewport(paneWidth, m.contentHeight())
	m.composer.SetWidth(paneWidth - 2)
	m.ready = true
	m.refreshViewport()
}

// handleReply resolves the in-flight request. The placeholder vanishes
// in every branch; what replaces it depends on the failure mode.
func (m *Model) handleReply(msg ReplyMsg) tea.Cmd {
	m.pending = nil

	switch {
	case msg.APIErr != "":
		// Backend-reported error: render it as an assistant message.
		err := m.store.AppendMessage(msg.ChatID, model.NewAssistantMessage("Error: "+msg.APIErr))
		if err != nil {
			m.logger.Error("failed to persist error reply", "err", err)
		}
	case msg.Err != nil:
		// Transport failure: no chat message, status bar line instead.
		m.logger.Error("chat request failed", "chat", msg.ChatID, "err", msg.Err)
		m.statusBar.SetError("message not sent: backend unreachable")
		m.syncSidebar()
		m.refreshViewport()
		return errClearCmd()
	default:
		err := m.store.AppendMessage(msg.ChatID, model.NewAssistantMessage(msg.Reply))
		if err != nil {
			m.logger.Error("failed to persist reply", "err", err)
		}
	}

	m.syncSidebar()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return nil
}

// handleKey routes key events by modal state, then focus.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.modal.Visible() {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, keys.NewChat):
		return m, m.createChat()

	case key.Matches(msg, keys.CycleFocus):
		m.cycleFocus()
		return m, nil
	}

	switch m.focus {
	case FocusComposer:
		return m.handleComposerKey(msg)
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	case FocusMessages:
		return m.handleMessagesKey(msg)
	case FocusAttachments:
		return m.handleAttachmentsKey(msg)
	}
	return m, nil
}

// cycleFocus rotates composer -> sidebar -> messages (-> attachments
// when chips exist) -> composer.
func (m *Model) cycleFocus() {
	switch m.focus {
	case FocusComposer:
		m.focus = FocusSidebar
		m.composer.Blur()
	case FocusSidebar:
		m.focus = FocusMessages
		m.msgCursor = m.lastAssistantIndex()
	case FocusMessages:
		if !m.attachments.Empty() {
			m.focus = FocusAttachments
		} else {
			m.focus = FocusComposer
			m.composer.Focus()
		}
	case FocusAttachments:
		m.focus = FocusComposer
		m.composer.Focus()
	}
	m.sidebar.CloseMenu()
	m.refreshViewport()
}

// createChat handles ctrl+n from any pane.
func (m *Model) createChat() tea.Cmd {
	if _, err := m.store.CreateChat(); err != nil {
		m.logger.Error("failed to create chat", "err", err)
		m.statusBar.SetError("could not save new chat")
		return errClearCmd()
	}
	m.focus = FocusComposer
	m.composer.Focus()
	m.composer.Reset()
	m.clampComposerHeight()
	m.syncSidebar()
	m.refreshViewport()
	return nil
}

// =============================================================================
// MODAL KEYS
// =============================================================================

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal.Mode() {
	case components.ModalRename:
		switch {
		case key.Matches(msg, keys.Confirm):
			// Empty titles are rejected by the store; either way the
			// modal closes, matching a dismissed dialog.
			if err := m.store.RenameChat(m.modal.ChatID(), m.modal.Title()); err != nil {
				m.logger.Error("failed to rename chat", "err", err)
			}
			m.modal.Hide()
			m.syncSidebar()
			return m, nil
		case key.Matches(msg, keys.Cancel):
			m.modal.Hide()
			return m, nil
		}
		return m, m.modal.Update(msg)

	case components.ModalConfirmDelete:
		switch {
		case key.Matches(msg, keys.Tab):
			m.modal.ToggleDeleteButton()
			return m, nil
		case key.Matches(msg, keys.Confirm):
			chatID := m.modal.ChatID()
			confirmed := m.modal.DeleteConfirmed()
			m.modal.Hide()
			if confirmed {
				if err := m.store.DeleteChat(chatID); err != nil {
					m.logger.Error("failed to delete chat", "err", err)
				}
				m.syncSidebar()
				m.refreshViewport()
			}
			return m, nil
		case key.Matches(msg, keys.Cancel):
			m.modal.Hide()
			return m, nil
		}
	}
	return m, nil
}

// =============================================================================
// COMPOSER KEYS
// =============================================================================

func (m *Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Newline):
		m.composer.InsertString("\n")
		m.clampComposerHeight()
		return m, nil

	case key.Matches(msg, keys.Send):
		return m, m.submitComposer()

	case key.Matches(msg, keys.Attach):
		// Attachment paths come from the composer text: whatever is
		// typed becomes a chip instead of a message.
		path := strings.TrimSpace(m.composer.Value())
		if path != "" && !strings.Contains(path, "\n") {
			m.attachments.Add(path)
			m.composer.Reset()
			m.clampComposerHeight()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	m.clampComposerHeight()
	return m, cmd
}

// submitComposer sends the composer contents to the current chat.
func (m *Model) submitComposer() tea.Cmd {
	text := strings.TrimSpace(m.composer.Value())
	if text == "" {
		return nil
	}
	if m.pending != nil {
		// One request in flight at a time; ignore until it resolves.
		return nil
	}

	chatID := m.store.CurrentID()
	if err := m.store.AppendMessage(chatID, model.NewUserMessage(text)); err != nil {
		m.logger.Error("failed to persist message", "err", err)
		m.statusBar.SetError("could not save message")
		return errClearCmd()
	}

	m.composer.Reset()
	m.clampComposerHeight()
	// Pending chips are cleared on send and never transmitted.
	m.attachments.Clear()

	m.pending = &pendingSend{chatID: chatID, started: nowFunc()}
	m.syncSidebar()
	m.refreshViewport()
	m.viewport.GotoBottom()

	return tea.Batch(m.sendCmd(chatID, text), m.spinner.Tick)
}

// clampComposerHeight grows the composer with its content up to the
// configured cap, mirroring an auto-growing input box.
func (m *Model) clampComposerHeight() {
	lines := strings.Count(m.composer.Value(), "\n") + 1
	if lines > m.cfg.UI.ComposerMaxLines {
		lines = m.cfg.UI.ComposerMaxLines
	}
	if lines < 1 {
		lines = 1
	}
	m.composer.SetHeight(lines)
}

// =============================================================================
// SIDEBAR KEYS
// =============================================================================

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sidebar.MenuIsOpen() {
		return m.handleSidebarMenuKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.sidebar.MoveUp()
	case key.Matches(msg, keys.Down):
		m.sidebar.MoveDown()
	case key.Matches(msg, keys.Confirm):
		if id := m.sidebar.CursorID(); id != "" {
			if err := m.store.SelectChat(id); err != nil {
				m.logger.Error("failed to select chat", "err", err)
			}
			m.syncSidebar()
			m.refreshViewport()
			m.viewport.GotoBottom()
		}
	case key.Matches(msg, keys.Menu):
		m.sidebar.OpenMenu()
	case key.Matches(msg, keys.Share):
		return m, m.shareChat(m.sidebar.CursorID())
	case key.Matches(msg, keys.Cancel):
		m.focus = FocusComposer
		m.composer.Focus()
	}
	return m, nil
}

func (m *Model) handleSidebarMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.sidebar.MenuUp()
	case key.Matches(msg, keys.Down):
		m.sidebar.MenuDown()
	case key.Matches(msg, keys.Rename):
		m.sidebar.CloseMenu()
		m.openRename(m.sidebar.CursorID())
	case key.Matches(msg, keys.Delete):
		m.sidebar.CloseMenu()
		m.openConfirmDelete(m.sidebar.CursorID())
	case key.Matches(msg, keys.Confirm):
		choice := m.sidebar.MenuSelection()
		id := m.sidebar.CursorID()
		m.sidebar.CloseMenu()
		switch choice {
		case components.MenuRename:
			m.openRename(id)
		case components.MenuDelete:
			m.openConfirmDelete(id)
		case components.MenuShare:
			return m, m.shareChat(id)
		}
	case key.Matches(msg, keys.Cancel):
		m.sidebar.CloseMenu()
	}
	return m, nil
}

func (m *Model) openRename(chatID string) {
	chat := m.store.Chat(chatID)
	if chat == nil {
		return
	}
	m.modal.ShowRename(chatID, chat.Title)
}

func (m *Model) openConfirmDelete(chatID string) {
	chat := m.store.Chat(chatID)
	if chat == nil {
		return
	}
	m.modal.ShowConfirmDelete(chatID, chat.Title)
}

// shareChat copies the chat transcript to the clipboard and logs the
// share gesture.
func (m *Model) shareChat(chatID string) tea.Cmd {
	chat := m.store.Chat(chatID)
	if chat == nil || chat.IsEmpty() {
		return nil
	}
	transcript := chat.Transcript()
	return tea.Batch(
		copyCmd("share#"+chatID, transcript),
		m.logActionCmd(api.ActionShare, chat.Title),
	)
}

// =============================================================================
// MESSAGE PANE KEYS
// =============================================================================

func (m *Model) handleMessagesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chat := m.store.CurrentChat()
	if chat == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		m.moveMsgCursor(chat, -1)
	case key.Matches(msg, keys.Down):
		m.moveMsgCursor(chat, +1)
	case key.Matches(msg, keys.Like):
		return m, m.toggleReaction(chat, components.ReactionLike, api.ActionLike)
	case key.Matches(msg, keys.Dislike):
		return m, m.toggleReaction(chat, components.ReactionDislike, api.ActionDislike)
	case key.Matches(msg, keys.Copy):
		return m, m.copyMessage(chat)
	case key.Matches(msg, keys.Cancel):
		m.focus = FocusComposer
		m.composer.Focus()
	}
	m.refreshViewport()
	return m, nil
}

// moveMsgCursor steps the selection to the next assistant message in
// the given direction. User messages have no affordances, so the
// cursor skips them.
func (m *Model) moveMsgCursor(chat *model.Chat, dir int) {
	i := m.msgCursor + dir
	for i >= 0 && i < len(chat.Messages) {
		if !chat.Messages[i].IsUser {
			m.msgCursor = i
			return
		}
		i += dir
	}
}

// lastAssistantIndex returns the newest assistant message index, or -1.
func (m *Model) lastAssistantIndex() int {
	chat := m.store.CurrentChat()
	if chat == nil {
		return -1
	}
	for i := len(chat.Messages) - 1; i >= 0; i-- {
		if !chat.Messages[i].IsUser {
			return i
		}
	}
	return -1
}

// selectedAssistantMessage returns the message under the cursor when it
// is a valid assistant message.
func (m *Model) selectedAssistantMessage(chat *model.Chat) (model.Message, bool) {
	if m.msgCursor < 0 || m.msgCursor >= len(chat.Messages) {
		return model.Message{}, false
	}
	msg := chat.Messages[m.msgCursor]
	if msg.IsUser {
		return model.Message{}, false
	}
	return msg, true
}

// toggleReaction flips like/dislike on the selected assistant message
// and fires the action log when a gesture lands (not when cleared).
func (m *Model) toggleReaction(chat *model.Chat, gesture components.Reaction, action api.Action) tea.Cmd {
	msg, ok := m.selectedAssistantMessage(chat)
	if !ok {
		return nil
	}

	result := m.reactions.Toggle(chat.ID, m.msgCursor, gesture)
	m.refreshViewport()

	if result == components.ReactionNone {
		return nil
	}
	return m.logActionCmd(action, msg.Content)
}

// copyMessage copies the selected assistant message to the clipboard
// and logs the copy gesture.
func (m *Model) copyMessage(chat *model.Chat) tea.Cmd {
	msg, ok := m.selectedAssistantMessage(chat)
	if !ok {
		return nil
	}
	key := reactionKey(chat.ID, m.msgCursor)
	return tea.Batch(
		copyCmd(key, msg.Content),
		m.logActionCmd(api.ActionCopy, msg.Content),
	)
}

// =============================================================================
// ATTACHMENT KEYS
// =============================================================================

func (m *Model) handleAttachmentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Down):
		m.attachments.Next()
	case msg.String() == "x", key.Matches(msg, keys.Delete):
		m.attachments.RemoveSelected()
		if m.attachments.Empty() {
			m.focus = FocusComposer
			m.composer.Focus()
		}
	case key.Matches(msg, keys.Cancel):
		m.focus = FocusComposer
		m.composer.Focus()
	}
	return m, nil
}
