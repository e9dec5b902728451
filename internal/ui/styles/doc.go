// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the plume TUI.
//
// The Theme struct holds every lipgloss style used by the renderer,
// built from an adaptive color palette that follows the terminal's
// light/dark background. Components receive a *Theme and never
// construct colors themselves.
package styles
