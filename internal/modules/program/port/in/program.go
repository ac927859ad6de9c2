package in

import (
	"context"

	"liftlog/internal/modules/program/dto"
)

type Usecase interface {
	ListDays(ctx context.Context) ([]dto.DayOutput, error)
	GetDay(ctx context.Context, key string) (dto.DayOutput, error)
	GetExercise(ctx context.Context, dayKey, name string) (dto.ExerciseOutput, error)
	Rules(ctx context.Context) dto.RulesOutput
}
