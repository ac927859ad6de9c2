package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workoutout "liftlog/internal/modules/workout/adapter/out"
	"liftlog/internal/modules/workout/domain"
)

func historyEntry(id, dayKey, date string, savedAt time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:              id,
		SavedAt:         savedAt,
		Date:            date,
		DayKey:          dayKey,
		DayTitle:        "Title " + dayKey,
		ProfileSnapshot: domain.Profile{Name: ""},
		Logs:            domain.DayLog{"Lift": {{Weight: "100"}, {}}},
		Notes:           "",
	}
}

func TestSQLiteHistoryIndexListsNewestFirst(t *testing.T) {
	t.Parallel()
	index, err := workoutout.NewSQLiteHistoryIndex(filepath.Join(t.TempDir(), "db", "liftlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)
	require.NoError(t, index.Upsert(ctx, historyEntry("a", "day1", "2026-10-01", base)))
	require.NoError(t, index.Upsert(ctx, historyEntry("b", "day2", "2026-10-03", base.Add(500*time.Millisecond))))
	require.NoError(t, index.Upsert(ctx, historyEntry("c", "day1", "2026-10-05", base.Add(48*time.Hour))))

	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	all, err := index.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Player", all[0].Athlete)
	assert.Equal(t, 1, all[0].LoggedSets)
	assert.False(t, all[0].HasNotes)
	assert.True(t, all[1].SavedAt.Equal(base.Add(500*time.Millisecond)))

	day1, err := index.List(ctx, domain.HistoryFilter{DayKey: "day1"})
	require.NoError(t, err)
	require.Len(t, day1, 2)
	assert.Equal(t, "c", day1[0].ID)

	window, err := index.List(ctx, domain.HistoryFilter{From: "2026-10-02", To: "2026-10-04"})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "b", window[0].ID)

	limited, err := index.List(ctx, domain.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	require.NoError(t, index.Delete(ctx, "b"))
	require.NoError(t, index.Delete(ctx, "missing"))
	count, err = index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, index.Reset(ctx))
	all, err = index.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteHistoryIndexUpsertReplaces(t *testing.T) {
	t.Parallel()
	index, err := workoutout.NewSQLiteHistoryIndex(filepath.Join(t.TempDir(), "liftlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	ctx := context.Background()

	entry := historyEntry("a", "day1", "2026-10-01", time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC))
	require.NoError(t, index.Upsert(ctx, entry))
	entry.Notes = "felt quick"
	require.NoError(t, index.Upsert(ctx, entry))

	all, err := index.List(ctx, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].HasNotes)
}
