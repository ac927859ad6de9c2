package domain

import (
	"fmt"
	"time"

	apperrors "liftlog/internal/platform/errors"
)

// HasEntries reports whether a day has anything worth snapshotting: a set
// with non-blank weight or reps, or non-blank notes.
func HasEntries(state State, dayKey string) bool {
	for _, sets := range state.Logs[dayKey] {
		for _, set := range sets {
			if !isBlank(set.Weight) || !isBlank(set.Reps) {
				return true
			}
		}
	}
	return !isBlank(state.Notes[dayKey])
}

// SaveToHistory snapshots one day at the front of the history list. The
// entry shares no memory with the live state.
func SaveToHistory(state *State, day DayDef, id string, now time.Time, today string) (HistoryEntry, error) {
	if !IsDayKey(day.Key) {
		return HistoryEntry{}, fmt.Errorf("unknown day %q: %w", day.Key, apperrors.ErrInvalidInput)
	}
	if !HasEntries(*state, day.Key) {
		return HistoryEntry{}, apperrors.ErrNothingToSave
	}
	date := state.SelectedDate
	if date == "" {
		date = today
	}
	entry := HistoryEntry{
		ID:              id,
		SavedAt:         now,
		Date:            date,
		DayKey:          day.Key,
		DayTitle:        day.Title,
		ProfileSnapshot: state.Profile,
		Logs:            CloneDayLog(state.Logs[day.Key]),
		Notes:           state.Notes[day.Key],
	}

	history := make([]HistoryEntry, 0, len(state.History)+1)
	history = append(history, entry)
	history = append(history, state.History...)
	if len(history) > HistoryCap {
		history = history[:HistoryCap]
	}
	state.History = history
	return CloneHistoryEntry(entry), nil
}

// DeleteHistoryEntry removes the entry with id and reports whether it existed.
func DeleteHistoryEntry(state *State, id string) bool {
	for i, entry := range state.History {
		if entry.ID == id {
			state.History = append(state.History[:i:i], state.History[i+1:]...)
			return true
		}
	}
	return false
}

func ClearHistory(state *State) {
	state.History = []HistoryEntry{}
}

func FindHistoryEntry(state State, id string) (HistoryEntry, bool) {
	for _, entry := range state.History {
		if entry.ID == id {
			return CloneHistoryEntry(entry), true
		}
	}
	return HistoryEntry{}, false
}

func CloneDayLog(log DayLog) DayLog {
	out := make(DayLog, len(log))
	for name, sets := range log {
		out[name] = append([]SetEntry{}, sets...)
	}
	return out
}

func CloneHistoryEntry(entry HistoryEntry) HistoryEntry {
	entry.Logs = CloneDayLog(entry.Logs)
	return entry
}

// Clone deep-copies a state so callers can hand out views of it safely.
func Clone(state State) State {
	out := state
	out.Notes = make(map[string]string, len(state.Notes))
	for k, v := range state.Notes {
		out.Notes[k] = v
	}
	out.Logs = make(map[string]DayLog, len(state.Logs))
	for k, v := range state.Logs {
		out.Logs[k] = CloneDayLog(v)
	}
	out.History = make([]HistoryEntry, 0, len(state.History))
	for _, entry := range state.History {
		out.History = append(out.History, CloneHistoryEntry(entry))
	}
	return out
}
