package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftlog/internal/modules/program/domain"
)

func TestBuiltinCatalogValidates(t *testing.T) {
	t.Parallel()
	catalog := domain.Builtin()
	require.NoError(t, catalog.Validate())

	days := catalog.Days()
	require.Len(t, days, 3)
	assert.Equal(t, []string{domain.DayOne, domain.DayTwo, domain.DayThree}, []string{days[0].Key, days[1].Key, days[2].Key})
	for _, day := range days {
		assert.Len(t, day.Exercises, 5, day.Key)
	}
}

func TestCatalogLookups(t *testing.T) {
	t.Parallel()
	catalog := domain.Builtin()

	ex, ok := catalog.Exercise(domain.DayThree, "Sled Push (or Heavy March)")
	require.True(t, ok)
	assert.Equal(t, 4, ex.Sets)
	assert.Equal(t, "4×20 target", ex.TargetText())

	_, ok = catalog.Exercise(domain.DayOne, "Bench Press")
	assert.False(t, ok)
	_, ok = catalog.Day("day4")
	assert.False(t, ok)
}

func TestCatalogReturnsCopies(t *testing.T) {
	t.Parallel()
	catalog := domain.Builtin()
	day, ok := catalog.Day(domain.DayOne)
	require.True(t, ok)
	day.Exercises[0].Sets = 99

	again, _ := catalog.Day(domain.DayOne)
	assert.Equal(t, 3, again.Exercises[0].Sets)
}

func TestNewCatalogRejectsInvalidDays(t *testing.T) {
	t.Parallel()
	_, err := domain.NewCatalog([]domain.Day{{Key: "d", Exercises: []domain.Exercise{
		{Name: "Squat", Sets: 3, TargetReps: 5},
		{Name: "Squat", Sets: 2, TargetReps: 5},
	}}})
	require.Error(t, err)

	_, err = domain.NewCatalog([]domain.Day{{Key: "d", Exercises: []domain.Exercise{{Name: "Squat", Sets: 0, TargetReps: 5}}}})
	require.Error(t, err)

	_, err = domain.NewCatalog([]domain.Day{{Key: "d"}, {Key: "d"}})
	require.Error(t, err)

	_, err = domain.NewCatalog([]domain.Day{{Key: "d", Exercises: []domain.Exercise{{Name: "Squat", Sets: 1, TargetReps: 1}}}})
	require.NoError(t, err)
}
