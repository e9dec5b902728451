// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable widgets of the plume TUI:
// the chat sidebar with its overflow menu, the shared modal, message
// bubbles with their action bar, attachment chips, the status bar, the
// welcome pane, and fenced code block highlighting.
//
// Components render from data handed to them and keep only view state
// (cursors, open menus). Session data lives in the store.
package components
