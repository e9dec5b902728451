// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diag sets up the diagnostic log channel.
//
// The TUI owns the terminal's alternate screen, so diagnostics can never
// go to stdout or stderr while it runs. Everything lands in plume.log
// under the data directory instead. Network failures, clipboard
// failures, and dropped action logs are diagnostic events, not UI state.
package diag

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// logFileName is the diagnostics file inside the data directory.
const logFileName = "plume.log"

// Open returns a logger writing to the diagnostics file under dataDir,
// plus a close function. When the file cannot be opened the logger
// discards everything rather than failing startup; a chat client with
// no diagnostics beats no chat client.
func Open(dataDir string, level slog.Level) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return discard(), noopClose, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dataDir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard(), noopClose, fmt.Errorf("failed to open diagnostics log: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(handler), f.Close, nil
}

// discard returns a logger that drops every record.
func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopClose() error { return nil }
