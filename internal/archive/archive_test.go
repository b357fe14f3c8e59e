package archive

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scriptsubmit/internal/workflow"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"First", "Second", "Third"} {
		sum := workflow.Summary{
			UserID:       "1001",
			Username:     "alice#0",
			ScriptName:   name,
			GameLink:     "https://roblox.com/games/1",
			Features:     "speed",
			Description:  "desc",
			HasKeySystem: i == 1,
			ScriptKey:    map[bool]string{true: "abc", false: ""}[i == 1],
		}
		require.NoError(t, s.Record(ctx, sum, base.Add(time.Duration(i)*time.Hour)))
	}

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Third", recent[0].ScriptName)
	assert.Equal(t, "Second", recent[1].ScriptName)
	assert.True(t, recent[1].HasKeySystem)
	assert.Equal(t, "abc", recent[1].ScriptKey)
	assert.Equal(t, base.Add(time.Hour), recent[1].DeliveredAt)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRecentOnEmptyStore(t *testing.T) {
	s := openTestStore(t)
	recent, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
