// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/config"
)

// copyFlashDuration is how long the copy ok/fail indicator shows.
const copyFlashDuration = 2 * time.Second

// errFlashDuration is how long a transport error stays in the status bar.
const errFlashDuration = 5 * time.Second

// =============================================================================
// MESSAGES
// =============================================================================

// ReplyMsg carries the outcome of one chat request. Exactly one of
// Reply, APIErr, and Err is meaningful.
type ReplyMsg struct {
	ChatID string
	Reply  string
	APIErr string // backend-reported error, rendered as a chat message
	Err    error  // transport failure, rendered in the status bar
}

// CopyResultMsg reports a clipboard write outcome for one message.
type CopyResultMsg struct {
	Key string
	OK  bool
}

// copyClearMsg ends a copy indicator flash.
type copyClearMsg struct{ Key string }

// errClearMsg ends a status bar error flash.
type errClearMsg struct{}

// actionLoggedMsg reports a fire-and-forget action log outcome.
// Only diagnostics care about it.
type actionLoggedMsg struct {
	action api.Action
	err    error
}

// ConfigReloadedMsg arrives when the config watcher sees a change.
// main relays it into the program with tea.Program.Send.
type ConfigReloadedMsg struct{ Cfg *config.Config }

// =============================================================================
// COMMANDS
// =============================================================================

// sendCmd posts the message to the backend and maps the outcome onto a
// ReplyMsg. Backend-reported errors and transport failures are kept
// distinct: the former become chat content, the latter do not.
func (m *Model) sendCmd(chatID, message string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := client.Send(context.Background(), chatID, message)
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) {
				return ReplyMsg{ChatID: chatID, APIErr: apiErr.Message}
			}
			return ReplyMsg{ChatID: chatID, Err: err}
		}
		return ReplyMsg{ChatID: chatID, Reply: reply}
	}
}

// copyCmd writes text to the system clipboard.
func copyCmd(key, text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		return CopyResultMsg{Key: key, OK: err == nil}
	}
}

// copyClearCmd schedules the end of a copy flash.
func copyClearCmd(key string) tea.Cmd {
	return tea.Tick(copyFlashDuration, func(time.Time) tea.Msg {
		return copyClearMsg{Key: key}
	})
}

// errClearCmd schedules the end of a status bar error flash.
func errClearCmd() tea.Cmd {
	return tea.Tick(errFlashDuration, func(time.Time) tea.Msg {
		return errClearMsg{}
	})
}

// logActionCmd journals the gesture locally, then fires the remote log.
// Neither outcome reaches the user; failures are diagnostics only.
func (m *Model) logActionCmd(action api.Action, content string) tea.Cmd {
	client := m.client
	journal := m.journal
	return func() tea.Msg {
		if journal != nil {
			if _, err := journal.Record(string(action), content); err != nil {
				return actionLoggedMsg{action: action, err: err}
			}
		}
		err := client.LogAction(context.Background(), action, content)
		return actionLoggedMsg{action: action, err: err}
	}
}
