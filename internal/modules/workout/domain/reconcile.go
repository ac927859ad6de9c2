package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "liftlog/internal/platform/errors"
)

type Field string

const (
	FieldWeight Field = "weight"
	FieldReps   Field = "reps"
)

// EnsureLog resizes the exercise's sets to ex.Sets. Entries present in both
// the old and new length are kept by index, new trailing entries are blank,
// and entries past the new length are dropped. Calling it again with the same
// definition changes nothing.
func EnsureLog(log DayLog, ex ExerciseDef) {
	current, ok := log[ex.Name]
	if ok && len(current) == ex.Sets {
		return
	}
	resized := make([]SetEntry, ex.Sets)
	copy(resized, current)
	log[ex.Name] = resized
}

// EnsureDay reconciles every exercise of day and returns its log.
func EnsureDay(state *State, day DayDef) (DayLog, error) {
	if !IsDayKey(day.Key) {
		return nil, fmt.Errorf("unknown day %q: %w", day.Key, apperrors.ErrInvalidInput)
	}
	ensureMaps(state)
	log := state.Logs[day.Key]
	for _, ex := range day.Exercises {
		EnsureLog(log, ex)
	}
	return log, nil
}

// SetField records free text for one set. setIndex is zero-based.
func SetField(state *State, dayKey string, ex ExerciseDef, setIndex int, field Field, value string) error {
	if !IsDayKey(dayKey) {
		return fmt.Errorf("unknown day %q: %w", dayKey, apperrors.ErrInvalidInput)
	}
	if setIndex < 0 || setIndex >= ex.Sets {
		return fmt.Errorf("set %d out of range for %s (%d sets): %w", setIndex+1, ex.Name, ex.Sets, apperrors.ErrInvalidInput)
	}
	ensureMaps(state)
	log := state.Logs[dayKey]
	EnsureLog(log, ex)
	switch field {
	case FieldWeight:
		log[ex.Name][setIndex].Weight = value
	case FieldReps:
		log[ex.Name][setIndex].Reps = value
	default:
		return fmt.Errorf("unknown field %q: %w", field, apperrors.ErrInvalidInput)
	}
	return nil
}

// AutofillTargets writes the target into every blank reps value of the
// exercise. Weights and non-blank reps are never touched.
func AutofillTargets(log DayLog, ex ExerciseDef) {
	target := strconv.Itoa(ex.TargetReps)
	for i, set := range log[ex.Name] {
		if isBlank(set.Reps) {
			log[ex.Name][i].Reps = target
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
