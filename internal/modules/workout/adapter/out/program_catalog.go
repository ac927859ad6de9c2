package out

import (
	"context"

	programdto "liftlog/internal/modules/program/dto"
	programin "liftlog/internal/modules/program/port/in"
	"liftlog/internal/modules/workout/domain"
	workoutout "liftlog/internal/modules/workout/port/out"
)

// ProgramCatalog exposes the program module's days to the workout service.
type ProgramCatalog struct {
	program programin.Usecase
}

func NewProgramCatalog(program programin.Usecase) workoutout.Catalog {
	return ProgramCatalog{program: program}
}

func (c ProgramCatalog) Days(ctx context.Context) ([]domain.DayDef, error) {
	days, err := c.program.ListDays(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DayDef, 0, len(days))
	for _, day := range days {
		out = append(out, toDayDef(day))
	}
	return out, nil
}

func (c ProgramCatalog) Day(ctx context.Context, key string) (domain.DayDef, error) {
	day, err := c.program.GetDay(ctx, key)
	if err != nil {
		return domain.DayDef{}, err
	}
	return toDayDef(day), nil
}

func toDayDef(day programdto.DayOutput) domain.DayDef {
	exercises := make([]domain.ExerciseDef, 0, len(day.Exercises))
	for _, ex := range day.Exercises {
		exercises = append(exercises, domain.ExerciseDef{
			Name:       ex.Name,
			Sets:       ex.Sets,
			TargetReps: ex.TargetReps,
			Link:       ex.Link,
		})
	}
	return domain.DayDef{Key: day.Key, Title: day.Title, Note: day.Note, Exercises: exercises}
}
