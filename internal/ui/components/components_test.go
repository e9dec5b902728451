// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/ui/styles"
)

func testChats(titles ...string) []*model.Chat {
	chats := make([]*model.Chat, 0, len(titles))
	for _, title := range titles {
		c := model.NewChat()
		c.Title = title
		chats = append(chats, c)
	}
	return chats
}

func TestSidebarCursorTracksChatAcrossUpdates(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())
	chats := testChats("alpha", "beta", "gamma")
	sb.SetChats(chats, chats[0].ID)

	sb.MoveDown()
	if sb.CursorID() != chats[1].ID {
		t.Fatalf("cursor should be on beta, got %s", sb.CursorID())
	}

	// Refresh with a chat prepended at the end; cursor stays on beta.
	chats = append(chats, testChats("delta")...)
	sb.SetChats(chats, chats[0].ID)
	if sb.CursorID() != chats[1].ID {
		t.Errorf("cursor should still be on beta after refresh, got %s", sb.CursorID())
	}
}

func TestSidebarCursorClampsAfterDelete(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())
	chats := testChats("one", "two")
	sb.SetChats(chats, chats[0].ID)
	sb.MoveDown()

	// Deleted chat under the cursor: cursor clamps to a valid row.
	sb.SetChats(chats[:1], chats[0].ID)
	if sb.CursorID() != chats[0].ID {
		t.Errorf("cursor should clamp to remaining chat, got %s", sb.CursorID())
	}
}

func TestSidebarMenuClosesOnMove(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())
	chats := testChats("one", "two")
	sb.SetChats(chats, chats[0].ID)

	sb.OpenMenu()
	if !sb.MenuIsOpen() {
		t.Fatal("menu should open")
	}
	sb.MoveDown()
	if sb.MenuIsOpen() {
		t.Error("moving the cursor must close the menu")
	}
}

func TestSidebarMenuSelection(t *testing.T) {
	sb := NewSidebar(styles.NewTheme())
	chats := testChats("one")
	sb.SetChats(chats, chats[0].ID)
	sb.OpenMenu()

	if sb.MenuSelection() != MenuRename {
		t.Errorf("menu should start on rename")
	}
	sb.MenuDown()
	if sb.MenuSelection() != MenuDelete {
		t.Errorf("expected delete, got %v", sb.MenuSelection())
	}
	sb.MenuDown()
	sb.MenuDown() // past the end clamps
	if sb.MenuSelection() != MenuShare {
		t.Errorf("expected share, got %v", sb.MenuSelection())
	}
}

func TestModalRenamePrefill(t *testing.T) {
	m := NewModal(styles.NewTheme())

	m.ShowRename("chat_1", "Old title")
	if m.Mode() != ModalRename {
		t.Fatal("modal should be in rename mode")
	}
	if m.Title() != "Old title" {
		t.Errorf("rename input should be pre-filled, got %q", m.Title())
	}

	m.Hide()
	if m.Visible() {
		t.Error("modal should hide")
	}

	// Reuse for another chat: pre-fill replaces prior contents.
	m.ShowRename("chat_2", "Other")
	if m.Title() != "Other" {
		t.Errorf("reused modal should show new title, got %q", m.Title())
	}
}

func TestModalDeleteDefaultsToCancel(t *testing.T) {
	m := NewModal(styles.NewTheme())
	m.ShowConfirmDelete("chat_1", "doomed chat")

	if m.DeleteConfirmed() {
		t.Error("delete confirmation must start on cancel")
	}
	m.ToggleDeleteButton()
	if !m.DeleteConfirmed() {
		t.Error("toggle should arm the delete button")
	}
}

func TestAttachments(t *testing.T) {
	a := NewAttachments(styles.NewTheme())

	a.Add("/tmp/notes.txt")
	a.Add("/tmp/report.pdf")
	a.Add("/tmp/notes.txt") // duplicate ignored
	if a.Count() != 2 {
		t.Fatalf("expected 2 chips, got %d", a.Count())
	}

	a.Next()
	a.RemoveSelected()
	if a.Count() != 1 {
		t.Errorf("expected 1 chip after removal, got %d", a.Count())
	}

	a.Clear()
	if !a.Empty() {
		t.Error("Clear should drop all chips")
	}
}

func TestHighlightCodeBlocksPassThrough(t *testing.T) {
	plain := "no code here\njust text"
	if got := HighlightCodeBlocks(plain, "catppuccin-mocha"); got != plain {
		t.Errorf("plain text must pass through unchanged, got %q", got)
	}
}

func TestHighlightCodeBlocksUnclosedFence(t *testing.T) {
	content := "look:\n```go\nfunc main() {}"
	got := HighlightCodeBlocks(content, "catppuccin-mocha")
	if !strings.Contains(got, "```go") {
		t.Error("unclosed fence should be left as-is")
	}
}

func TestHighlightCodeBlocksKeepsSurroundingText(t *testing.T) {
	content := "before\n```go\nfunc main() {}\n```\nafter"
	got := HighlightCodeBlocks(content, "catppuccin-mocha")
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Error("text outside fences must survive highlighting")
	}
	if strings.Contains(got, "```") {
		t.Error("fence markers should be consumed for closed blocks")
	}
}
