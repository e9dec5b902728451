// Copyright (c) 2025 Plume Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	id1, err := j.Record("like", "great answer")
	require.NoError(t, err)
	id2, err := j.Record("copy", "some code")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	actions := []string{entries[0].Action, entries[1].Action}
	assert.ElementsMatch(t, []string{"like", "copy"}, actions)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestRecentLimit(t *testing.T) {
	j := openTestJournal(t)

	for i := 0; i < 5; i++ {
		_, err := j.Record("dislike", "entry")
		require.NoError(t, err)
	}

	entries, err := j.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	n, err := j.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()

	j, err := Open(dir)
	require.NoError(t, err)
	_, err = j.Record("share", "transcript")
	require.NoError(t, err)
	require.NoError(t, j.Close())

	j2, err := Open(dir)
	require.NoError(t, err)
	defer j2.Close()

	n, err := j2.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
