package usecase

import (
	"context"
	"fmt"
	"strings"

	"liftlog/internal/modules/workout/domain"
	workoutdto "liftlog/internal/modules/workout/dto"
	workoutin "liftlog/internal/modules/workout/port/in"
	"liftlog/internal/modules/workout/service"
	apperrors "liftlog/internal/platform/errors"
)

type Interactor struct {
	svc *service.WorkoutService
}

func NewInteractor(svc *service.WorkoutService) workoutin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Overview(ctx context.Context) (workoutdto.StateOutput, error) {
	state, err := i.svc.State(ctx)
	if err != nil {
		return workoutdto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) OpenDay(ctx context.Context, dayKey string) (workoutdto.DayViewOutput, error) {
	day, log, err := i.svc.OpenDay(ctx, dayKey)
	if err != nil {
		return workoutdto.DayViewOutput{}, err
	}
	state, err := i.svc.State(ctx)
	if err != nil {
		return workoutdto.DayViewOutput{}, err
	}
	out := workoutdto.DayViewOutput{
		Key:       day.Key,
		Title:     day.Title,
		Note:      day.Note,
		Date:      state.SelectedDate,
		Notes:     state.Notes[day.Key],
		Exercises: make([]workoutdto.ExerciseLogOutput, 0, len(day.Exercises)),
	}
	for _, ex := range day.Exercises {
		out.Exercises = append(out.Exercises, toExerciseLog(ex, log[ex.Name]))
	}
	return out, nil
}

func (i *Interactor) SetField(ctx context.Context, input workoutdto.SetFieldInput) (workoutdto.ExerciseLogOutput, error) {
	if input.Weight == nil && input.Reps == nil {
		return workoutdto.ExerciseLogOutput{}, fmt.Errorf("weight or reps is required: %w", apperrors.ErrInvalidInput)
	}
	if input.Set < 1 {
		return workoutdto.ExerciseLogOutput{}, fmt.Errorf("set number must be at least 1: %w", apperrors.ErrInvalidInput)
	}
	ex, err := i.exercise(ctx, input.DayKey, input.Exercise)
	if err != nil {
		return workoutdto.ExerciseLogOutput{}, err
	}
	var updates []service.FieldUpdate
	if input.Weight != nil {
		updates = append(updates, service.FieldUpdate{Field: domain.FieldWeight, Value: *input.Weight})
	}
	if input.Reps != nil {
		updates = append(updates, service.FieldUpdate{Field: domain.FieldReps, Value: *input.Reps})
	}
	sets, err := i.svc.SetFields(ctx, input.DayKey, ex.Name, input.Set-1, updates...)
	if err != nil {
		return workoutdto.ExerciseLogOutput{}, err
	}
	return toExerciseLog(ex, sets), nil
}

func (i *Interactor) Autofill(ctx context.Context, dayKey, exercise string) (workoutdto.ExerciseLogOutput, error) {
	ex, err := i.exercise(ctx, dayKey, exercise)
	if err != nil {
		return workoutdto.ExerciseLogOutput{}, err
	}
	sets, err := i.svc.Autofill(ctx, dayKey, ex.Name)
	if err != nil {
		return workoutdto.ExerciseLogOutput{}, err
	}
	return toExerciseLog(ex, sets), nil
}

func (i *Interactor) SetNotes(ctx context.Context, dayKey, notes string) error {
	return i.svc.SetNotes(ctx, dayKey, notes)
}

func (i *Interactor) ClearDay(ctx context.Context, dayKey string) error {
	return i.svc.ClearDay(ctx, dayKey)
}

func (i *Interactor) SetDate(ctx context.Context, date string) (string, error) {
	return i.svc.SetDate(ctx, date)
}

func (i *Interactor) SetActiveView(ctx context.Context, view string) error {
	return i.svc.SetActiveView(ctx, view)
}

func (i *Interactor) GetProfile(ctx context.Context) (workoutdto.Profile, error) {
	state, err := i.svc.State(ctx)
	if err != nil {
		return workoutdto.Profile{}, err
	}
	return toProfile(state.Profile), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, profile workoutdto.Profile) (workoutdto.Profile, error) {
	if err := i.svc.UpdateProfile(ctx, fromProfile(profile)); err != nil {
		return workoutdto.Profile{}, err
	}
	return profile, nil
}

func (i *Interactor) ResetProfile(ctx context.Context) (workoutdto.Profile, error) {
	profile, err := i.svc.ResetProfile(ctx)
	if err != nil {
		return workoutdto.Profile{}, err
	}
	return toProfile(profile), nil
}

func (i *Interactor) SaveToHistory(ctx context.Context, dayKey string) (workoutdto.HistoryEntryOutput, error) {
	entry, err := i.svc.SaveToHistory(ctx, dayKey)
	if err != nil {
		return workoutdto.HistoryEntryOutput{}, err
	}
	return i.toEntryOutput(ctx, entry)
}

func (i *Interactor) ListHistory(ctx context.Context, query workoutdto.HistoryQueryInput) ([]workoutdto.HistorySummaryOutput, error) {
	if query.Limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative: %w", apperrors.ErrInvalidInput)
	}
	if query.DayKey != "" && !domain.IsDayKey(query.DayKey) {
		return nil, fmt.Errorf("unknown day %q: %w", query.DayKey, apperrors.ErrInvalidInput)
	}
	summaries, err := i.svc.QueryHistory(ctx, domain.HistoryFilter{
		DayKey: query.DayKey,
		From:   strings.TrimSpace(query.From),
		To:     strings.TrimSpace(query.To),
		Limit:  query.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]workoutdto.HistorySummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, workoutdto.HistorySummaryOutput{
			ID:         s.ID,
			SavedAt:    s.SavedAt,
			Date:       s.Date,
			DayKey:     s.DayKey,
			DayTitle:   s.DayTitle,
			Athlete:    s.Athlete,
			LoggedSets: s.LoggedSets,
			HasNotes:   s.HasNotes,
		})
	}
	return out, nil
}

func (i *Interactor) GetHistoryEntry(ctx context.Context, id string) (workoutdto.HistoryEntryOutput, error) {
	entry, err := i.svc.HistoryEntry(ctx, id)
	if err != nil {
		return workoutdto.HistoryEntryOutput{}, err
	}
	return i.toEntryOutput(ctx, entry)
}

func (i *Interactor) DeleteHistoryEntry(ctx context.Context, id string) (bool, error) {
	return i.svc.DeleteHistoryEntry(ctx, id)
}

func (i *Interactor) ClearHistory(ctx context.Context) error {
	return i.svc.ClearHistory(ctx)
}

func (i *Interactor) ExportHistory(ctx context.Context, dir string) (workoutdto.ExportOutput, error) {
	paths, err := i.svc.ExportHistory(ctx, dir)
	if err != nil {
		return workoutdto.ExportOutput{}, err
	}
	return workoutdto.ExportOutput{Dir: dir, Paths: paths}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) ResetAll(ctx context.Context) (workoutdto.StateOutput, error) {
	state, err := i.svc.ResetAll(ctx)
	if err != nil {
		return workoutdto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) OpenVideo(ctx context.Context, dayKey, exercise string, launch bool) (workoutdto.VideoOutput, error) {
	ex, err := i.exercise(ctx, dayKey, exercise)
	if err != nil {
		return workoutdto.VideoOutput{}, err
	}
	link, err := i.svc.OpenVideo(ctx, dayKey, ex.Name, launch)
	if err != nil {
		return workoutdto.VideoOutput{Exercise: ex.Name, Link: link}, err
	}
	return workoutdto.VideoOutput{Exercise: ex.Name, Link: link, Opened: launch}, nil
}

// exercise resolves a name exactly, then case-insensitively, so the CLI
// accepts "back squat" for "Back Squat".
func (i *Interactor) exercise(ctx context.Context, dayKey, name string) (domain.ExerciseDef, error) {
	day, err := i.svc.Day(ctx, dayKey)
	if err != nil {
		return domain.ExerciseDef{}, err
	}
	if ex, ok := day.Exercise(name); ok {
		return ex, nil
	}
	for _, ex := range day.Exercises {
		if strings.EqualFold(ex.Name, strings.TrimSpace(name)) {
			return ex, nil
		}
	}
	return domain.ExerciseDef{}, fmt.Errorf("exercise %q on %s: %w", name, dayKey, apperrors.ErrNotFound)
}

func (i *Interactor) toEntryOutput(ctx context.Context, entry domain.HistoryEntry) (workoutdto.HistoryEntryOutput, error) {
	details, err := i.svc.RenderDetails(ctx, entry)
	if err != nil {
		return workoutdto.HistoryEntryOutput{}, err
	}
	return workoutdto.HistoryEntryOutput{
		ID:       entry.ID,
		SavedAt:  entry.SavedAt,
		Date:     entry.Date,
		DayKey:   entry.DayKey,
		DayTitle: entry.DayTitle,
		Profile:  toProfile(entry.ProfileSnapshot),
		Notes:    entry.Notes,
		Details:  details,
	}, nil
}

func toExerciseLog(ex domain.ExerciseDef, sets []domain.SetEntry) workoutdto.ExerciseLogOutput {
	out := workoutdto.ExerciseLogOutput{
		Name:       ex.Name,
		Sets:       ex.Sets,
		TargetReps: ex.TargetReps,
		TargetText: fmt.Sprintf("%d×%d target", ex.Sets, ex.TargetReps),
		Link:       ex.Link,
		Entries:    make([]workoutdto.SetOutput, 0, len(sets)),
	}
	for n, set := range sets {
		out.Entries = append(out.Entries, workoutdto.SetOutput{Number: n + 1, Weight: set.Weight, Reps: set.Reps})
	}
	return out
}

func toStateOutput(state domain.State) workoutdto.StateOutput {
	return workoutdto.StateOutput{
		ActiveView:   state.ActiveView,
		SelectedDate: state.SelectedDate,
		Profile:      toProfile(state.Profile),
		HistoryCount: len(state.History),
	}
}

func toProfile(p domain.Profile) workoutdto.Profile {
	return workoutdto.Profile{
		Name:     p.Name,
		Age:      p.Age,
		Grade:    p.Grade,
		Height:   p.Height,
		Weight:   p.Weight,
		Position: p.Position,
		Goals:    p.Goals,
	}
}

func fromProfile(p workoutdto.Profile) domain.Profile {
	return domain.Profile{
		Name:     p.Name,
		Age:      p.Age,
		Grade:    p.Grade,
		Height:   p.Height,
		Weight:   p.Weight,
		Position: p.Position,
		Goals:    p.Goals,
	}
}
