package compiler

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := OpenHistory(path)
	require.NoError(t, err)
	require.NoError(t, h.Append("10 + 5", 0))
	require.NoError(t, h.Append("capsule T { x<String> = 5 }", 1))
	require.NoError(t, h.Close())

	// Reopen: entries survive restart.
	h, err = OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()

	entries, err := h.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "capsule T { x<String> = 5 }", entries[0].Input)
	assert.Equal(t, 1, entries[0].Diagnostics)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestHistoryRecentLimits(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer h.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Append("input", 0))
	}
	entries, err := h.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
