package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	programdomain "liftlog/internal/modules/program/domain"
	programusecase "liftlog/internal/modules/program/usecase"
	workoutout "liftlog/internal/modules/workout/adapter/out"
	apperrors "liftlog/internal/platform/errors"
)

func TestProgramCatalogMapsDays(t *testing.T) {
	t.Parallel()
	catalog := workoutout.NewProgramCatalog(programusecase.NewInteractor(programdomain.Builtin()))
	ctx := context.Background()

	days, err := catalog.Days(ctx)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"day1", "day2", "day3"}, []string{days[0].Key, days[1].Key, days[2].Key})

	day2, err := catalog.Day(ctx, "day2")
	require.NoError(t, err)
	assert.Equal(t, "Day 2 – Upper Body Strength", day2.Title)
	require.NotEmpty(t, day2.Exercises)
	bench := day2.Exercises[0]
	assert.Equal(t, "Bench Press", bench.Name)
	assert.Equal(t, 3, bench.Sets)
	assert.Equal(t, 5, bench.TargetReps)
	assert.NotEmpty(t, bench.Link)

	_, err = catalog.Day(ctx, "day9")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
