package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "wordle.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestStore_InsertAndRecent(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	rows := []Result{
		{SessionID: "a", Remote: "127.0.0.1:1", Answer: "crane", Attempts: 3, Outcome: OutcomeWon, StartedAt: base, FinishedAt: base.Add(time.Minute)},
		{SessionID: "b", Remote: "127.0.0.1:2", Answer: "slate", Attempts: 6, Outcome: OutcomeLost, StartedAt: base, FinishedAt: base.Add(3 * time.Minute)},
		{SessionID: "c", Remote: "127.0.0.1:3", Answer: "apple", Attempts: 1, Outcome: OutcomeAbandoned, StartedAt: base, FinishedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range rows {
		require.NoError(t, s.Insert(ctx, r))
	}
	// duplicate insert is ignored
	require.NoError(t, s.Insert(ctx, rows[0]))

	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].SessionID)
	assert.Equal(t, "c", got[1].SessionID)
	assert.Equal(t, "a", got[2].SessionID)
	assert.True(t, rows[1].FinishedAt.Equal(got[0].FinishedAt))
	assert.Equal(t, OutcomeLost, got[0].Outcome)
	assert.Equal(t, 6, got[0].Attempts)

	top, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "b", top[0].SessionID)
}

func TestStore_RejectsUnknownOutcome(t *testing.T) {
	s, _ := openTemp(t)
	err := s.Insert(context.Background(), Result{SessionID: "x", Outcome: "draw", StartedAt: time.Now(), FinishedAt: time.Now()})
	assert.Error(t, err)
}

func TestStore_DuplicateSessionIgnored(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Insert(ctx, Result{SessionID: "dup", Outcome: OutcomeWon, Attempts: 2, StartedAt: now, FinishedAt: now}))
	require.NoError(t, s.Insert(ctx, Result{SessionID: "dup", Outcome: OutcomeLost, Attempts: 6, StartedAt: now, FinishedAt: now}))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, OutcomeWon, got[0].Outcome)
	assert.Equal(t, 2, got[0].Attempts)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	s, path := openTemp(t)
	require.NoError(t, s.Insert(context.Background(), Result{
		SessionID: "keep", Outcome: OutcomeWon, StartedAt: time.Now(), FinishedAt: time.Now(),
	}))
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	got, err := again.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].SessionID)
}
