// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the plume TUI: a bubbletea model wiring the
// session store, the backend client, and the feedback journal to the
// widgets in ui/components.
//
// The model is split across files the usual way:
//
//   - model.go: the Model struct and construction
//   - update.go: key routing and state transitions
//   - view.go: layout and the message pane projection
//   - commands.go: tea.Cmd factories and their result messages
//   - keys.go: key bindings
//   - reactions.go: per-message like/dislike view state
//
// Two rules keep the update loop simple. First, session data is only
// ever mutated through the store, which persists synchronously; the
// model holds view state only (focus, cursors, reactions, copy
// flashes, the in-flight request). Second, everything slow happens in
// a tea.Cmd and comes back as a message; Update never blocks.
package chat
