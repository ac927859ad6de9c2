package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"liftlog/internal/modules/workout/domain"
	workoutout "liftlog/internal/modules/workout/port/out"

	_ "modernc.org/sqlite"
)

// savedAtLayout is fixed width so the text column sorts chronologically.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteHistoryIndex projects history summaries into a queryable table.
type SQLiteHistoryIndex struct {
	db *sql.DB
}

func NewSQLiteHistoryIndex(dbPath string) (*SQLiteHistoryIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteHistoryIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

var _ workoutout.HistoryIndex = (*SQLiteHistoryIndex)(nil)

func (s *SQLiteHistoryIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteHistoryIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS history_entries (
  id TEXT PRIMARY KEY,
  saved_at TEXT NOT NULL,
  date TEXT NOT NULL,
  day_key TEXT NOT NULL,
  day_title TEXT NOT NULL,
  athlete TEXT NOT NULL,
  logged_sets INTEGER NOT NULL,
  has_notes INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_day ON history_entries(day_key, saved_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history_entries table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history_entries`); err != nil {
		return fmt.Errorf("reset history_entries: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryIndex) Upsert(ctx context.Context, entry domain.HistoryEntry) error {
	summary := domain.Summarize(entry)
	const stmt = `
INSERT INTO history_entries (id, saved_at, date, day_key, day_title, athlete, logged_sets, has_notes)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  saved_at=excluded.saved_at,
  date=excluded.date,
  day_key=excluded.day_key,
  day_title=excluded.day_title,
  athlete=excluded.athlete,
  logged_sets=excluded.logged_sets,
  has_notes=excluded.has_notes;
`
	_, err := s.db.ExecContext(ctx, stmt,
		summary.ID,
		summary.SavedAt.UTC().Format(savedAtLayout),
		summary.Date,
		summary.DayKey,
		summary.DayTitle,
		summary.Athlete,
		summary.LoggedSets,
		summary.HasNotes,
	)
	if err != nil {
		return fmt.Errorf("upsert history entry: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryIndex) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history entries: %w", err)
	}
	return n, nil
}

// List returns summaries newest first, ties broken by insertion order. From
// and To bound the workout date inclusively.
func (s *SQLiteHistoryIndex) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistorySummary, error) {
	var (
		where []string
		args  []any
	)
	if filter.DayKey != "" {
		where = append(where, "day_key = ?")
		args = append(args, filter.DayKey)
	}
	if filter.From != "" {
		where = append(where, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		where = append(where, "date <= ?")
		args = append(args, filter.To)
	}
	query := `SELECT id, saved_at, date, day_key, day_title, athlete, logged_sets, has_notes FROM history_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY saved_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history entries: %w", err)
	}
	defer rows.Close()

	out := []domain.HistorySummary{}
	for rows.Next() {
		var (
			summary domain.HistorySummary
			savedAt string
		)
		if err := rows.Scan(&summary.ID, &savedAt, &summary.Date, &summary.DayKey, &summary.DayTitle, &summary.Athlete, &summary.LoggedSets, &summary.HasNotes); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		summary.SavedAt, err = time.Parse(savedAtLayout, savedAt)
		if err != nil {
			return nil, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}
	return out, nil
}
