// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		maxLen  int
		want    string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"longer than max", "hello world", 8, "hello..."},
		{"multibyte not split", "héllo wörld", 8, "héllo..."},
		{"max at or below three", "hello", 3, "hel"},
		{"zero max", "hello", 0, ""},
		{"empty input", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateRunes(tt.input, tt.maxLen))
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	// Each CJK rune is two cells wide.
	assert.Equal(t, "hello", TruncateWidth("hello", 10))
	assert.Equal(t, "", TruncateWidth("hello", 0))

	got := TruncateWidth("日本語のタイトル", 8)
	assert.NotEqual(t, "日本語のタイトル", got)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one", FirstLine("one\ntwo\nthree"))
	assert.Equal(t, "no newline", FirstLine("no newline"))
	assert.Equal(t, "trimmed", FirstLine("trimmed  \nrest"))
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	err := AtomicWriteFile(path, []byte(`{"ok":true}`), 0o644)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	// Overwrite replaces the previous contents completely.
	err = AtomicWriteFile(path, []byte("second"), 0o644)
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
