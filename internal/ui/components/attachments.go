// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path/filepath"
	"strings"

	"github.com/plumechat/plume-tui/internal/ui/styles"
)

// Attachments holds the pending attachment chips shown above the
// composer. Attachments are local-only UI state: they are listed,
// removable, and cleared on send, but their contents never leave the
// machine and nothing about them is included in the chat request.
type Attachments struct {
	theme  *styles.Theme
	paths  []string
	cursor int
}

// NewAttachments creates an empty attachment list.
func NewAttachments(theme *styles.Theme) *Attachments {
	return &Attachments{theme: theme}
}

// Add appends a path chip. Duplicates are ignored.
func (a *Attachments) Add(path string) {
	for _, p := range a.paths {
		if p == path {
			return
		}
	}
	a.paths = append(a.paths, path)
}

// RemoveSelected removes the chip under the cursor.
func (a *Attachments) RemoveSelected() {
	if len(a.paths) == 0 {
		return
	}
	a.paths = append(a.paths[:a.cursor], a.paths[a.cursor+1:]...)
	if a.cursor >= len(a.paths) && a.cursor > 0 {
		a.cursor--
	}
}

// Next moves the chip cursor right, wrapping.
func (a *Attachments) Next() {
	if len(a.paths) > 0 {
		a.cursor = (a.cursor + 1) % len(a.paths)
	}
}

// Clear drops all chips.
func (a *Attachments) Clear() {
	a.paths = nil
	a.cursor = 0
}

// Empty reports whether there are no chips.
func (a *Attachments) Empty() bool {
	return len(a.paths) == 0
}

// Count returns the number of pending chips.
func (a *Attachments) Count() int {
	return len(a.paths)
}

// View renders the chip row, or empty when there are no chips.
func (a *Attachments) View(focused bool) string {
	if len(a.paths) == 0 {
		return ""
	}

	chips := make([]string, 0, len(a.paths))
	for i, p := range a.paths {
		label := filepath.Base(p)
		if focused && i == a.cursor {
			chips = append(chips, a.theme.AttachmentChipActive.Render(label+" ×"))
		} else {
			chips = append(chips, a.theme.AttachmentChip.Render(label))
		}
	}
	return strings.Join(chips, "")
}
