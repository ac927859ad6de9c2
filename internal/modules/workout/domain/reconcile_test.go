package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftlog/internal/modules/workout/domain"
	apperrors "liftlog/internal/platform/errors"
)

var squat = domain.ExerciseDef{Name: "Back Squat", Sets: 2, TargetReps: 5}

func TestEnsureLogCreatesBlankSets(t *testing.T) {
	t.Parallel()
	log := domain.DayLog{}
	domain.EnsureLog(log, domain.ExerciseDef{Name: "Box Jumps", Sets: 3, TargetReps: 3})
	assert.Equal(t, []domain.SetEntry{{}, {}, {}}, log["Box Jumps"])
}

func TestEnsureLogIsIdempotent(t *testing.T) {
	t.Parallel()
	log := domain.DayLog{"Back Squat": {{Weight: "95", Reps: "5"}}}
	domain.EnsureLog(log, squat)
	first := domain.CloneDayLog(log)
	domain.EnsureLog(log, squat)
	assert.Equal(t, first, log)
	assert.Equal(t, []domain.SetEntry{{Weight: "95", Reps: "5"}, {}}, log["Back Squat"])
}

func TestEnsureLogResizePreservesOverlap(t *testing.T) {
	t.Parallel()
	logged := []domain.SetEntry{{Weight: "95", Reps: "5"}, {Weight: "100", Reps: "5"}}

	shrunk := domain.DayLog{"Back Squat": append([]domain.SetEntry{}, logged...)}
	domain.EnsureLog(shrunk, domain.ExerciseDef{Name: "Back Squat", Sets: 1, TargetReps: 5})
	assert.Equal(t, []domain.SetEntry{{Weight: "95", Reps: "5"}}, shrunk["Back Squat"])

	grown := domain.DayLog{"Back Squat": append([]domain.SetEntry{}, logged...)}
	domain.EnsureLog(grown, domain.ExerciseDef{Name: "Back Squat", Sets: 3, TargetReps: 5})
	assert.Equal(t, append(append([]domain.SetEntry{}, logged...), domain.SetEntry{}), grown["Back Squat"])
}

func TestAutofillFillsOnlyBlanks(t *testing.T) {
	t.Parallel()
	ex := domain.ExerciseDef{Name: "Med Ball Slams", Sets: 3, TargetReps: 8}
	log := domain.DayLog{ex.Name: {{}, {Weight: "50", Reps: "5"}, {Weight: "10", Reps: "  "}}}
	domain.AutofillTargets(log, ex)
	assert.Equal(t, []domain.SetEntry{
		{Weight: "", Reps: "8"},
		{Weight: "50", Reps: "5"},
		{Weight: "10", Reps: "8"},
	}, log[ex.Name])
}

func TestSetField(t *testing.T) {
	t.Parallel()
	state := domain.DefaultState("2026-10-17")
	require.NoError(t, domain.SetField(&state, "day1", squat, 1, domain.FieldWeight, "135 lb"))
	require.NoError(t, domain.SetField(&state, "day1", squat, 1, domain.FieldReps, "5"))
	assert.Equal(t, []domain.SetEntry{{}, {Weight: "135 lb", Reps: "5"}}, state.Logs["day1"]["Back Squat"])

	err := domain.SetField(&state, "day1", squat, 2, domain.FieldReps, "5")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	err = domain.SetField(&state, "day1", squat, 0, domain.Field("tempo"), "3-1-1")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	err = domain.SetField(&state, "history", squat, 0, domain.FieldReps, "5")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestEnsureDay(t *testing.T) {
	t.Parallel()
	state := domain.State{}
	log, err := domain.EnsureDay(&state, domain.DayDef{Key: "day2", Exercises: []domain.ExerciseDef{squat}})
	require.NoError(t, err)
	assert.Len(t, log["Back Squat"], 2)
	assert.Len(t, state.Logs["day2"]["Back Squat"], 2)

	_, err = domain.EnsureDay(&state, domain.DayDef{Key: "profile"})
	assert.Error(t, err)
}
