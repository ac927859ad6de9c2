package usecase

import (
	"context"
	"fmt"

	"liftlog/internal/modules/program/domain"
	"liftlog/internal/modules/program/dto"
	programin "liftlog/internal/modules/program/port/in"
	apperrors "liftlog/internal/platform/errors"
)

type Interactor struct {
	catalog domain.Catalog
}

func NewInteractor(catalog domain.Catalog) programin.Usecase {
	return &Interactor{catalog: catalog}
}

func (i *Interactor) ListDays(_ context.Context) ([]dto.DayOutput, error) {
	days := i.catalog.Days()
	out := make([]dto.DayOutput, 0, len(days))
	for _, day := range days {
		out = append(out, toDayOutput(day))
	}
	return out, nil
}

func (i *Interactor) GetDay(_ context.Context, key string) (dto.DayOutput, error) {
	day, ok := i.catalog.Day(key)
	if !ok {
		return dto.DayOutput{}, fmt.Errorf("day %q: %w", key, apperrors.ErrNotFound)
	}
	return toDayOutput(day), nil
}

func (i *Interactor) GetExercise(_ context.Context, dayKey, name string) (dto.ExerciseOutput, error) {
	if _, ok := i.catalog.Day(dayKey); !ok {
		return dto.ExerciseOutput{}, fmt.Errorf("day %q: %w", dayKey, apperrors.ErrNotFound)
	}
	ex, ok := i.catalog.Exercise(dayKey, name)
	if !ok {
		return dto.ExerciseOutput{}, fmt.Errorf("exercise %q on %s: %w", name, dayKey, apperrors.ErrNotFound)
	}
	return toExerciseOutput(ex), nil
}

func (i *Interactor) Rules(_ context.Context) dto.RulesOutput {
	return dto.RulesOutput{Progression: domain.ProgressionRule, Intensity: domain.IntensityRule}
}

func toDayOutput(day domain.Day) dto.DayOutput {
	exercises := make([]dto.ExerciseOutput, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		exercises = append(exercises, toExerciseOutput(ex))
	}
	return dto.DayOutput{Key: day.Key, Title: day.Title, Note: day.Note, Exercises: exercises}
}

func toExerciseOutput(ex domain.Exercise) dto.ExerciseOutput {
	return dto.ExerciseOutput{
		Name:       ex.Name,
		Sets:       ex.Sets,
		TargetReps: ex.TargetReps,
		TargetText: ex.TargetText(),
		Link:       ex.Link,
	}
}
