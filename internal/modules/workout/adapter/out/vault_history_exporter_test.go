package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	workoutout "liftlog/internal/modules/workout/adapter/out"
	"liftlog/internal/modules/workout/domain"
	"liftlog/internal/platform/markdown"
)

func TestVaultHistoryExporterWritesNotesAndIndex(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exporter := workoutout.NewVaultHistoryExporter()
	ctx := context.Background()

	entry := domain.HistoryEntry{
		ID:              "h1",
		SavedAt:         time.Date(2026, 10, 17, 18, 4, 5, 0, time.UTC),
		Date:            "2026-10-16",
		DayKey:          "day1",
		DayTitle:        "Day 1 – Lower Body Power",
		ProfileSnapshot: domain.Profile{Name: "Graham"},
	}
	paths, err := exporter.Export(ctx, dir, []domain.ExportNote{{Entry: entry, Body: "### Back Squat\n\n- Set 1: Weight 135 • Reps 5\n"}})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "history", "2026-10-16", "180405-day-1-lower-body-power-h1.md"), paths[0])

	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	meta := map[string]any{}
	body, found, err := markdown.DecodeFrontmatter(string(content), &meta)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "h1", meta["id"])
	assert.Equal(t, "day1", meta["day_key"])
	assert.Equal(t, "Graham", meta["athlete"])
	assert.Equal(t, domain.SchemaVersion, meta["schema_version"])
	assert.Contains(t, body, "# Day 1 – Lower Body Power")
	assert.Contains(t, body, "- Set 1: Weight 135 • Reps 5")

	indexPath := filepath.Join(dir, "history", "index.md")
	require.NoError(t, os.WriteFile(indexPath, []byte("# My lifts\n\nkeep this line\n"), 0o644))
	_, err = exporter.Export(ctx, dir, []domain.ExportNote{{Entry: entry, Body: "x"}})
	require.NoError(t, err)
	_, err = exporter.Export(ctx, dir, []domain.ExportNote{{Entry: entry, Body: "x"}})
	require.NoError(t, err)

	index, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	text := string(index)
	assert.True(t, strings.HasPrefix(text, "# My lifts\n\nkeep this line\n"))
	assert.Equal(t, 1, strings.Count(text, "<!-- liftlog:history:start -->"))
	assert.Contains(t, text, "- [2026-10-16 – Day 1 – Lower Body Power](2026-10-16/180405-day-1-lower-body-power-h1.md)")
}

func TestVaultHistoryExporterEmptyHistory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths, err := workoutout.NewVaultHistoryExporter().Export(context.Background(), dir, nil)
	require.NoError(t, err)
	assert.Empty(t, paths)

	index, err := os.ReadFile(filepath.Join(dir, "history", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "_No workouts saved yet._")
}

func TestVaultHistoryExporterPrunesDeletedEntries(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	exporter := workoutout.NewVaultHistoryExporter()
	ctx := context.Background()

	keep := domain.HistoryEntry{ID: "keep", SavedAt: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), Date: "2026-10-17", DayKey: "day2", DayTitle: "Upper"}
	gone := domain.HistoryEntry{ID: "gone", SavedAt: time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC), Date: "2026-10-10", DayKey: "day1", DayTitle: "Lower"}
	paths, err := exporter.Export(ctx, dir, []domain.ExportNote{{Entry: keep, Body: "a"}, {Entry: gone, Body: "b"}})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	personal := filepath.Join(dir, "history", "2026-10-17", "my-notes.md")
	require.NoError(t, os.WriteFile(personal, []byte("# mine\n"), 0o644))

	paths, err = exporter.Export(ctx, dir, []domain.ExportNote{{Entry: keep, Body: "a"}})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	assert.FileExists(t, paths[0])
	assert.FileExists(t, personal)
	assert.NoDirExists(t, filepath.Join(dir, "history", "2026-10-10"))
}

func TestVaultHistoryExporterKeepsSameSecondEntriesApart(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	savedAt := time.Date(2026, 10, 17, 18, 4, 5, 0, time.UTC)
	first := domain.HistoryEntry{ID: "0f4c2a9e-1111-4000-8000-000000000001", SavedAt: savedAt, Date: "2026-10-17", DayKey: "day1", DayTitle: "Day 1"}
	second := domain.HistoryEntry{ID: "7b13d5c0-2222-4000-8000-000000000002", SavedAt: savedAt.Add(300 * time.Millisecond), Date: "2026-10-17", DayKey: "day1", DayTitle: "Day 1"}

	paths, err := workoutout.NewVaultHistoryExporter().Export(context.Background(), dir,
		[]domain.ExportNote{{Entry: first, Body: "first"}, {Entry: second, Body: "second"}})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])
	assert.Equal(t, filepath.Join(dir, "history", "2026-10-17", "180405-day-1-0f4c2a9e.md"), paths[0])

	for i, want := range []string{"first", "second"} {
		content, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Contains(t, string(content), want)
	}
	index, err := os.ReadFile(filepath.Join(dir, "history", "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "(2026-10-17/180405-day-1-0f4c2a9e.md)")
	assert.Contains(t, string(index), "(2026-10-17/180405-day-1-7b13d5c0.md)")
}
