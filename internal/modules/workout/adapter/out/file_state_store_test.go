package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workoutout "liftlog/internal/modules/workout/adapter/out"
	"liftlog/internal/modules/workout/domain"
	apperrors "liftlog/internal/platform/errors"
)

func TestFileStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".liftlog", "state.json")
	store := workoutout.NewFileStateStore(path)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	state := domain.DefaultState("2026-10-17")
	state.Logs["day1"]["Back Squat"] = []domain.SetEntry{{Weight: "135", Reps: "5"}, {}}
	state.History = append(state.History, domain.HistoryEntry{
		ID:      "h1",
		SavedAt: time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC),
		Date:    "2026-10-17",
		DayKey:  "day1",
		Logs:    domain.DayLog{"Back Squat": {{Weight: "135", Reps: "5"}}},
	})
	require.NoError(t, store.Save(ctx, state))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"activeTab": "day1"`)
	assert.Contains(t, string(raw), `"savedAt": "2026-10-17T18:00:00Z"`)
	assert.NotContains(t, string(raw), "activeDay")

	rec, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, rec.State)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, store.Remove(ctx))
	require.NoError(t, store.Remove(ctx))
	_, err = store.Load(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestFileStateStoreCorruptAndBlankRecords(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "state.json")
	store := workoutout.NewFileStateStore(path)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	_, err := store.Load(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	require.NoError(t, os.WriteFile(path, []byte(`{"activeTab": 3`), 0o644))
	_, err = store.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCorruptState))
	var corrupt *domain.CorruptStateError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, `{"activeTab": 3`, string(corrupt.Payload))
}
