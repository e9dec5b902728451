// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/config"
	"github.com/plumechat/plume-tui/internal/feedback"
	"github.com/plumechat/plume-tui/internal/store"
	"github.com/plumechat/plume-tui/internal/ui/components"
	"github.com/plumechat/plume-tui/internal/ui/styles"
)

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusComposer Focus = iota
	FocusSidebar
	FocusMessages
	FocusAttachments
)

// Sender posts messages and gestures to the backend. *api.Client is the
// production implementation; tests substitute a stub.
type Sender interface {
	Send(ctx context.Context, chatID, message string) (string, error)
	LogAction(ctx context.Context, action api.Action, content string) error
}

// nowFunc is swapped in tests to pin time.
var nowFunc = time.Now

// pendingSend tracks the one in-flight chat request. The "Thinking..."
// placeholder renders if and only if this is non-nil and the user is
// viewing the chat it belongs to.
type pendingSend struct {
	chatID  string
	started time.Time
}

// Model is the root bubbletea model for the plume TUI.
type Model struct {
	// Collaborators
	store   *store.Store
	client  Sender
	journal *feedback.Journal // nil when the journal failed to open
	logger  *slog.Logger
	cfg     *config.Config

	// Styling and widgets
	theme       *styles.Theme
	sidebar     *components.Sidebar
	modal       *components.Modal
	statusBar   *components.StatusBar
	attachments *components.Attachments
	composer    textarea.Model
	viewport    viewport.Model
	spinner     spinner.Model

	// View state
	focus     Focus
	pending   *pendingSend
	reactions Reactions
	copyFlash map[string]components.CopyFlash
	msgCursor int

	width  int
	height int
	ready  bool
}

// New creates the root model. journal may be nil.
func New(st *store.Store, client Sender, journal *feedback.Journal, cfg *config.Config, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	theme := styles.NewTheme()

	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.Spinner

	m := &Model{
		store:       st,
		client:      client,
		journal:     journal,
		logger:      logger,
		cfg:         cfg,
		theme:       theme,
		sidebar:     components.NewSidebar(theme),
		modal:       components.NewModal(theme),
		statusBar:   components.NewStatusBar(theme, cfg.Server.URL),
		attachments: components.NewAttachments(theme),
		composer:    ta,
		spinner:     sp,
		focus:       FocusComposer,
		reactions:   NewReactions(),
		copyFlash:   make(map[string]components.CopyFlash),
	}

	m.syncSidebar()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// syncSidebar re-projects the store into the sidebar and status bar.
// Called after every store mutation.
func (m *Model) syncSidebar() {
	m.sidebar.SetChats(m.store.Chats(), m.store.CurrentID())
	m.statusBar.SetChatCount(m.store.Len())
}

// viewingPending reports whether the in-flight request belongs to the
// chat currently on screen.
func (m *Model) viewingPending() bool {
	return m.pending != nil && m.pending.chatID == m.store.CurrentID()
}

// Theme exposes the theme for view helpers.
func (m *Model) Theme() *styles.Theme {
	return m.theme
}
