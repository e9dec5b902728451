// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/config"
	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/storage"
	"github.com/plumechat/plume-tui/internal/store"
)

// historyFileName is the REPL input history inside the data dir.
const historyFileName = "repl_history"

// HandleChat runs the line-based REPL. It shares the session store
// with the TUI: the conversation appends to the current chat and is
// visible there afterwards.
//
//	plume chat
func HandleChat(cfg *config.Config, logger *slog.Logger) int {
	if !IsInteractive() {
		fmt.Fprintln(os.Stderr, "plume chat needs an interactive terminal; use 'plume ask' for piped input")
		return 2
	}

	st, err := store.Open(storage.NewStateFile(cfg.DataDir()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: could not open session:", err)
		return 1
	}

	client := api.NewClient(cfg.Server.URL, logger)

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	historyPath := filepath.Join(cfg.DataDir(), historyFileName)
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, historyPath, logger)

	chat := st.CurrentChat()
	fmt.Printf("plume chat · %s · /quit to exit\n", chat.Title)

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return 0
			}
			// io.EOF on ctrl+d ends the session cleanly.
			return 0
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" {
			return 0
		}
		line.AppendHistory(input)

		chatID := st.CurrentID()
		if err := st.AppendMessage(chatID, model.NewUserMessage(input)); err != nil {
			fmt.Fprintln(os.Stderr, "error: could not save message:", err)
			return 1
		}

		reply, err := client.Send(context.Background(), chatID, input)
		if err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) {
				errText := "Error: " + apiErr.Message
				st.AppendMessage(chatID, model.NewAssistantMessage(errText))
				fmt.Println(errText)
				continue
			}
			// Transport failure: report it, keep the REPL alive, and
			// leave no placeholder in the chat.
			fmt.Fprintln(os.Stderr, "error: backend unreachable:", err)
			continue
		}

		if err := st.AppendMessage(chatID, model.NewAssistantMessage(reply)); err != nil {
			logger.Error("failed to persist reply", "err", err)
		}
		fmt.Print(renderMarkdown(reply))
	}
}

// saveHistory writes the liner history file.
func saveHistory(line *liner.State, path string, logger *slog.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("could not save REPL history", "err", err)
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
