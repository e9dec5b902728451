// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/ui/styles"
	"github.com/plumechat/plume-tui/internal/util"
)

// MenuChoice identifies an entry of the sidebar overflow menu.
type MenuChoice int

// Overflow menu entries, in display order.
const (
	MenuRename MenuChoice = iota
	MenuDelete
	MenuShare
	menuCount
)

var menuLabels = [menuCount]string{
	MenuRename: "rename",
	MenuDelete: "delete",
	MenuShare:  "share",
}

// sidebarRow is one chat entry projected for display.
type sidebarRow struct {
	id    string
	title string
}

// Sidebar renders the chat list. The cursor (keyboard selection) is
// independent of the current chat: navigating the list does not switch
// chats until the row is confirmed with enter.
type Sidebar struct {
	theme *styles.Theme

	rows      []sidebarRow
	currentID string
	cursor    int

	menuOpen   bool
	menuCursor int

	width  int
	height int
}

// NewSidebar creates an empty sidebar.
func NewSidebar(theme *styles.Theme) *Sidebar {
	return &Sidebar{theme: theme}
}

// SetSize sets the sidebar's render dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetChats projects the store's chats into the sidebar, keeping the
// cursor on the same row where possible.
func (s *Sidebar) SetChats(chats []*model.Chat, currentID string) {
	prevID := s.CursorID()

	s.rows = s.rows[:0]
	for _, c := range chats {
		s.rows = append(s.rows, sidebarRow{id: c.ID, title: c.Title})
	}
	s.currentID = currentID

	s.cursor = 0
	for i, r := range s.rows {
		if r.id == prevID {
			s.cursor = i
			break
		}
	}
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.menuOpen && s.CursorID() != prevID {
		s.menuOpen = false
	}
}

// CursorID returns the chat id under the cursor, or empty.
func (s *Sidebar) CursorID() string {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return ""
	}
	return s.rows[s.cursor].id
}

// MoveUp moves the cursor one row up. A move closes any open menu.
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
	s.menuOpen = false
}

// MoveDown moves the cursor one row down. A move closes any open menu.
func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.rows)-1 {
		s.cursor++
	}
	s.menuOpen = false
}

// OpenMenu opens the overflow menu for the row under the cursor.
func (s *Sidebar) OpenMenu() {
	if len(s.rows) == 0 {
		return
	}
	s.menuOpen = true
	s.menuCursor = 0
}

// CloseMenu closes the overflow menu.
func (s *Sidebar) CloseMenu() {
	s.menuOpen = false
}

// MenuIsOpen reports whether the overflow menu is showing.
func (s *Sidebar) MenuIsOpen() bool {
	return s.menuOpen
}

// MenuUp moves the menu selection up.
func (s *Sidebar) MenuUp() {
	if s.menuCursor > 0 {
		s.menuCursor--
	}
}

// MenuDown moves the menu selection down.
func (s *Sidebar) MenuDown() {
	if s.menuCursor < int(menuCount)-1 {
		s.menuCursor++
	}
}

// MenuSelection returns the highlighted menu entry.
func (s *Sidebar) MenuSelection() MenuChoice {
	return MenuChoice(s.menuCursor)
}

// View renders the sidebar.
func (s *Sidebar) View(focused bool) string {
	var b strings.Builder

	b.WriteString(s.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	// Interior width: border and padding eat four cells.
	innerWidth := s.width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}

	for i, row := range s.rows {
		title := util.TruncateWidth(row.title, innerWidth-2)

		marker := "  "
		if row.id == s.currentID {
			marker = "* "
		}
		line := marker + title

		switch {
		case focused && i == s.cursor:
			b.WriteString(s.theme.SidebarItemSelected.Render(util.PadWidth(line, innerWidth)))
		case row.id == s.currentID:
			b.WriteString(s.theme.SidebarItemCurrent.Render(line))
		default:
			b.WriteString(s.theme.SidebarItem.Render(line))
		}
		b.WriteString("\n")

		if s.menuOpen && i == s.cursor {
			b.WriteString(s.renderMenu())
			b.WriteString("\n")
		}
	}

	frame := s.theme.Sidebar
	if focused {
		frame = s.theme.SidebarFocused
	}
	return frame.Width(s.width).Height(s.height).Render(b.String())
}

// renderMenu renders the overflow menu under the cursor row.
func (s *Sidebar) renderMenu() string {
	items := make([]string, 0, menuCount)
	for i, label := range menuLabels {
		if MenuChoice(i) == s.MenuSelection() {
			items = append(items, s.theme.SidebarMenuSelected.Render(" "+label+" "))
		} else {
			items = append(items, s.theme.SidebarMenuItem.Render(" "+label+" "))
		}
	}
	return s.theme.SidebarMenu.Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
