// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"

	"github.com/plumechat/plume-tui/internal/api"
	"github.com/plumechat/plume-tui/internal/config"
)

// HandleAsk runs a one-shot question against the backend and prints
// the reply. The question is the joined positional args after "ask".
//
//	plume ask what is a goroutine
func HandleAsk(args *ArgParser, cfg *config.Config, logger *slog.Logger) int {
	question := args.JoinFrom(1)
	if question == "" {
		fmt.Fprintln(os.Stderr, "usage: plume ask <question>")
		return 2
	}

	client := api.NewClient(cfg.Server.URL, logger)

	reply, err := client.Send(context.Background(), "", question)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, "Error: "+apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "error: backend unreachable:", err)
		}
		return 1
	}

	fmt.Print(renderMarkdown(reply))
	return 0
}

// renderMarkdown renders markdown for terminal output, falling back to
// the raw text when stdout is not a terminal or glamour fails.
func renderMarkdown(text string) string {
	if !IsOutputTerminal() {
		return text + "\n"
	}

	width := TerminalWidth()
	if width > 100 {
		width = 100
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text + "\n"
	}

	out, err := renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}
