// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the whole plume session as one JSON blob.
//
// There is exactly one state file per data directory. Every save
// rewrites the complete blob atomically; there is no per-chat file
// layout and no partial update path. Load distinguishes "no state has
// ever been saved" (ErrStateNotFound) from "a state exists but holds
// zero chats", which callers treat differently at startup.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plumechat/plume-tui/internal/model"
	"github.com/plumechat/plume-tui/internal/util"
)

// stateFileName is the fixed name of the session blob inside the data
// directory. Kept stable across versions so upgrades find prior state.
const stateFileName = "chatdata.json"

// ErrStateNotFound indicates no session state file exists yet.
// First launch hits this; it is not a failure.
var ErrStateNotFound = errors.New("session state not found")

// StateFile reads and writes the session blob under a data directory.
type StateFile struct {
	path string
}

// NewStateFile creates a state file handle rooted at dataDir. The
// directory is created lazily on first save.
func NewStateFile(dataDir string) *StateFile {
	return &StateFile{path: filepath.Join(dataDir, stateFileName)}
}

// Path returns the absolute location of the state blob.
func (s *StateFile) Path() string {
	return s.path
}

// Save serializes the whole session state and writes it atomically.
// RELIABILITY: temp file + fsync + rename, so a crash mid-save leaves
// the previous blob intact. There is deliberately no retry here; the
// caller surfaces the error and the in-memory state stays authoritative.
func (s *StateFile) Save(state *model.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := util.AtomicWriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

// Load reads and deserializes the session blob.
//
// An absent file returns ErrStateNotFound. Malformed JSON propagates as
// an error; plume never silently discards a corrupt blob.
func (s *StateFile) Load() (*model.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}

	if state.Chats == nil {
		state.Chats = []*model.Chat{}
	}
	return &state, nil
}
