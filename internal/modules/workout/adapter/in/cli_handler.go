package in

import (
	"context"

	workoutdto "liftlog/internal/modules/workout/dto"
	workoutin "liftlog/internal/modules/workout/port/in"
)

type CLIHandler struct {
	usecase workoutin.Usecase
}

func NewCLIHandler(usecase workoutin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Overview(ctx context.Context) (workoutdto.StateOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) ShowDay(ctx context.Context, dayKey string) (workoutdto.DayViewOutput, error) {
	return h.usecase.OpenDay(ctx, dayKey)
}

// SetEntry records weight and/or reps; a nil pointer leaves that field alone.
func (h CLIHandler) SetEntry(ctx context.Context, dayKey, exercise string, set int, weight, reps *string) (workoutdto.ExerciseLogOutput, error) {
	return h.usecase.SetField(ctx, workoutdto.SetFieldInput{DayKey: dayKey, Exercise: exercise, Set: set, Weight: weight, Reps: reps})
}

func (h CLIHandler) Autofill(ctx context.Context, dayKey, exercise string) (workoutdto.ExerciseLogOutput, error) {
	return h.usecase.Autofill(ctx, dayKey, exercise)
}

func (h CLIHandler) SetNotes(ctx context.Context, dayKey, notes string) error {
	return h.usecase.SetNotes(ctx, dayKey, notes)
}

func (h CLIHandler) ClearDay(ctx context.Context, dayKey string) error {
	return h.usecase.ClearDay(ctx, dayKey)
}

func (h CLIHandler) SetDate(ctx context.Context, date string) (string, error) {
	return h.usecase.SetDate(ctx, date)
}

func (h CLIHandler) SetView(ctx context.Context, view string) error {
	return h.usecase.SetActiveView(ctx, view)
}

func (h CLIHandler) Profile(ctx context.Context) (workoutdto.Profile, error) {
	return h.usecase.GetProfile(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, profile workoutdto.Profile) (workoutdto.Profile, error) {
	return h.usecase.UpdateProfile(ctx, profile)
}

func (h CLIHandler) ResetProfile(ctx context.Context) (workoutdto.Profile, error) {
	return h.usecase.ResetProfile(ctx)
}

func (h CLIHandler) SaveHistory(ctx context.Context, dayKey string) (workoutdto.HistoryEntryOutput, error) {
	return h.usecase.SaveToHistory(ctx, dayKey)
}

func (h CLIHandler) ListHistory(ctx context.Context, dayKey, from, to string, limit int) ([]workoutdto.HistorySummaryOutput, error) {
	return h.usecase.ListHistory(ctx, workoutdto.HistoryQueryInput{DayKey: dayKey, From: from, To: to, Limit: limit})
}

func (h CLIHandler) ShowHistory(ctx context.Context, id string) (workoutdto.HistoryEntryOutput, error) {
	return h.usecase.GetHistoryEntry(ctx, id)
}

func (h CLIHandler) DeleteHistory(ctx context.Context, id string) (bool, error) {
	return h.usecase.DeleteHistoryEntry(ctx, id)
}

func (h CLIHandler) ClearHistory(ctx context.Context) error {
	return h.usecase.ClearHistory(ctx)
}

func (h CLIHandler) ExportHistory(ctx context.Context, dir string) (workoutdto.ExportOutput, error) {
	return h.usecase.ExportHistory(ctx, dir)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) ResetAll(ctx context.Context) (workoutdto.StateOutput, error) {
	return h.usecase.ResetAll(ctx)
}

func (h CLIHandler) Video(ctx context.Context, dayKey, exercise string, open bool) (workoutdto.VideoOutput, error) {
	return h.usecase.OpenVideo(ctx, dayKey, exercise, open)
}
