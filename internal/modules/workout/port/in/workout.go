package in

import (
	"context"

	"liftlog/internal/modules/workout/dto"
)

type Usecase interface {
	Overview(ctx context.Context) (dto.StateOutput, error)
	OpenDay(ctx context.Context, dayKey string) (dto.DayViewOutput, error)
	SetField(ctx context.Context, input dto.SetFieldInput) (dto.ExerciseLogOutput, error)
	Autofill(ctx context.Context, dayKey, exercise string) (dto.ExerciseLogOutput, error)
	SetNotes(ctx context.Context, dayKey, notes string) error
	ClearDay(ctx context.Context, dayKey string) error

	SetDate(ctx context.Context, date string) (string, error)
	SetActiveView(ctx context.Context, view string) error

	GetProfile(ctx context.Context) (dto.Profile, error)
	UpdateProfile(ctx context.Context, profile dto.Profile) (dto.Profile, error)
	ResetProfile(ctx context.Context) (dto.Profile, error)

	SaveToHistory(ctx context.Context, dayKey string) (dto.HistoryEntryOutput, error)
	ListHistory(ctx context.Context, query dto.HistoryQueryInput) ([]dto.HistorySummaryOutput, error)
	GetHistoryEntry(ctx context.Context, id string) (dto.HistoryEntryOutput, error)
	DeleteHistoryEntry(ctx context.Context, id string) (bool, error)
	ClearHistory(ctx context.Context) error
	ExportHistory(ctx context.Context, dir string) (dto.ExportOutput, error)
	Reindex(ctx context.Context) error

	ResetAll(ctx context.Context) (dto.StateOutput, error)
	OpenVideo(ctx context.Context, dayKey, exercise string, launch bool) (dto.VideoOutput, error)
}
