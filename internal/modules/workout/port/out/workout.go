package out

import (
	"context"

	"liftlog/internal/modules/workout/domain"
)

// StateStore persists the single state record. Load returns
// apperrors.ErrNotFound when nothing was saved yet and a
// *domain.CorruptStateError when the record cannot be decoded.
type StateStore interface {
	Load(ctx context.Context) (domain.Record, error)
	Save(ctx context.Context, state domain.State) error
	Remove(ctx context.Context) error
}

type Catalog interface {
	Days(ctx context.Context) ([]domain.DayDef, error)
	Day(ctx context.Context, key string) (domain.DayDef, error)
}

type HistoryIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, entry domain.HistoryEntry) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistorySummary, error)
}

type HistoryExporter interface {
	Export(ctx context.Context, dir string, notes []domain.ExportNote) ([]string, error)
}

type VideoLauncher interface {
	Open(ctx context.Context, target string) error
}
