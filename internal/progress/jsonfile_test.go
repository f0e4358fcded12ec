package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", FileName)
	s := NewFileStore(path, nil)
	fixed := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s, path
}

func TestFileStore_MissingFileIsNewUser(t *testing.T) {
	s, _ := newTestFileStore(t)

	r, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, difficulty.Easy, r.CurrentTier)
	assert.Zero(t, r.QuestionsAnswered)
	for _, tier := range difficulty.AllTiers {
		assert.Equal(t, TierStats{}, r.Tier(tier))
	}
}

func TestFileStore_CorruptFileIsNewUser(t *testing.T) {
	s, path := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	r, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, difficulty.Easy, r.CurrentTier)
	assert.Zero(t, r.TotalScore)
}

func TestFileStore_RoundTrip(t *testing.T) {
	s, path := newTestFileStore(t)
	ctx := context.Background()

	r, err := s.Load(ctx)
	require.NoError(t, err)
	r.BeginSession()
	r.RecordAnswer(difficulty.Easy, true, 10)
	r.RecordAnswer(difficulty.Easy, false, 10)
	r.RecordAnswer(difficulty.Medium, true, 15)
	r.CurrentTier = difficulty.Medium
	require.NoError(t, s.Save(ctx, r))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"current_tier": "medium"`)
	assert.Contains(t, string(raw), `"easy": {`)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Medium, got.CurrentTier)
	assert.Equal(t, 3, got.QuestionsAnswered)
	assert.Equal(t, 2, got.CorrectAnswers)
	assert.Equal(t, 25, got.TotalScore)
	assert.Equal(t, 1, got.SessionsPlayed)
	assert.Equal(t, TierStats{Answered: 2, Correct: 1}, got.Tier(difficulty.Easy))
	assert.Equal(t, TierStats{Answered: 1, Correct: 1}, got.Tier(difficulty.Medium))
	assert.Equal(t, TierStats{}, got.Tier(difficulty.Hard))
	assert.True(t, got.UpdatedAt.Equal(s.now()))
}

func TestReset(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()

	r, err := s.Load(ctx)
	require.NoError(t, err)
	r.RecordAnswer(difficulty.Hard, true, 20)
	r.CurrentTier = difficulty.Hard
	require.NoError(t, s.Save(ctx, r))

	fresh, err := Reset(ctx, s, s.now())
	require.NoError(t, err)
	assert.Equal(t, difficulty.Easy, fresh.CurrentTier)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Easy, got.CurrentTier)
	assert.Zero(t, got.QuestionsAnswered)
}
