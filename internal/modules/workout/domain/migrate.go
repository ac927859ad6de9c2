package domain

import (
	"fmt"

	apperrors "liftlog/internal/platform/errors"
)

// Record is the persisted layout as read back from disk. Records written
// before the view selector was renamed carry it as activeDay.
type Record struct {
	State
	LegacyActiveView string `json:"activeDay,omitempty"`
}

// Migrate applies the backward-compatibility fixups to a decoded record.
func Migrate(rec Record, today string) State {
	state := rec.State
	if state.ActiveView == "" && rec.LegacyActiveView != "" {
		state.ActiveView = rec.LegacyActiveView
	}
	if ValidateView(state.ActiveView) != nil {
		state.ActiveView = ViewDayOne
	}
	if state.History == nil {
		state.History = []HistoryEntry{}
	}
	if state.SelectedDate == "" {
		state.SelectedDate = today
	}
	ensureMaps(&state)
	return state
}

// CorruptStateError carries the unreadable payload so it can be logged
// before it is discarded.
type CorruptStateError struct {
	Payload []byte
	Cause   error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("%s: %v", apperrors.ErrCorruptState, e.Cause)
}

func (e *CorruptStateError) Unwrap() []error {
	return []error{apperrors.ErrCorruptState, e.Cause}
}
