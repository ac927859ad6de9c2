package domain

import (
	"fmt"
	"time"

	apperrors "liftlog/internal/platform/errors"
)

const (
	ViewDayOne   = "day1"
	ViewDayTwo   = "day2"
	ViewDayThree = "day3"
	ViewProfile  = "profile"
	ViewHistory  = "history"

	HistoryCap    = 200
	SchemaVersion = 1
)

// DayKeys are the workout days a state carries notes and logs for.
var DayKeys = []string{ViewDayOne, ViewDayTwo, ViewDayThree}

type SetEntry struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// DayLog maps an exercise name to its sets, index-aligned with the program.
type DayLog map[string][]SetEntry

type Profile struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Grade    string `json:"grade"`
	Height   string `json:"height"`
	Weight   string `json:"weight"`
	Position string `json:"position"`
	Goals    string `json:"goals"`
}

type HistoryEntry struct {
	ID              string    `json:"id"`
	SavedAt         time.Time `json:"savedAt"`
	Date            string    `json:"date"`
	DayKey          string    `json:"dayKey"`
	DayTitle        string    `json:"dayTitle"`
	ProfileSnapshot Profile   `json:"profileSnapshot"`
	Logs            DayLog    `json:"logs"`
	Notes           string    `json:"notes"`
}

// State is everything persisted between runs. It is owned by one caller and
// passed explicitly to every operation in this package.
type State struct {
	ActiveView   string            `json:"activeTab"`
	SelectedDate string            `json:"date"`
	Profile      Profile           `json:"profile"`
	Notes        map[string]string `json:"notes"`
	Logs         map[string]DayLog `json:"logs"`
	History      []HistoryEntry    `json:"history"`
}

// ExerciseDef is the slice of a program exercise the state needs: how many
// sets to keep and what to fill blanks with.
type ExerciseDef struct {
	Name       string
	Sets       int
	TargetReps int
	Link       string
}

type DayDef struct {
	Key       string
	Title     string
	Note      string
	Exercises []ExerciseDef
}

// ExerciseOrder lists the day's exercise names in program order.
func (d DayDef) ExerciseOrder() []string {
	out := make([]string, 0, len(d.Exercises))
	for _, ex := range d.Exercises {
		out = append(out, ex.Name)
	}
	return out
}

func (d DayDef) Exercise(name string) (ExerciseDef, bool) {
	for _, ex := range d.Exercises {
		if ex.Name == name {
			return ex, true
		}
	}
	return ExerciseDef{}, false
}

func DefaultProfile() Profile {
	return Profile{Name: "Graham", Age: "14", Goals: "Strength + speed"}
}

// DefaultState is the first-ever load.
func DefaultState(today string) State {
	s := State{
		ActiveView:   ViewDayOne,
		SelectedDate: today,
		Profile:      DefaultProfile(),
		Notes:        map[string]string{},
		Logs:         map[string]DayLog{},
		History:      []HistoryEntry{},
	}
	for _, key := range DayKeys {
		s.Notes[key] = ""
		s.Logs[key] = DayLog{}
	}
	return s
}

func IsDayKey(key string) bool {
	for _, k := range DayKeys {
		if k == key {
			return true
		}
	}
	return false
}

func ValidateView(view string) error {
	if IsDayKey(view) || view == ViewProfile || view == ViewHistory {
		return nil
	}
	return fmt.Errorf("unknown view %q: %w", view, apperrors.ErrInvalidInput)
}

func SetActiveView(state *State, view string) error {
	if err := ValidateView(view); err != nil {
		return err
	}
	state.ActiveView = view
	return nil
}

// SetDate stores an ISO date; a blank value falls back to today.
func SetDate(state *State, date, today string) error {
	if date == "" {
		state.SelectedDate = today
		return nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, apperrors.ErrInvalidInput)
	}
	state.SelectedDate = date
	return nil
}

func SetNotes(state *State, dayKey, notes string) error {
	if !IsDayKey(dayKey) {
		return fmt.Errorf("unknown day %q: %w", dayKey, apperrors.ErrInvalidInput)
	}
	ensureMaps(state)
	state.Notes[dayKey] = notes
	return nil
}

func UpdateProfile(state *State, profile Profile) {
	state.Profile = profile
}

func ResetProfile(state *State) {
	state.Profile = DefaultProfile()
}

// ClearDay empties one day's log and notes. Profile and history are untouched.
func ClearDay(state *State, dayKey string) error {
	if !IsDayKey(dayKey) {
		return fmt.Errorf("unknown day %q: %w", dayKey, apperrors.ErrInvalidInput)
	}
	ensureMaps(state)
	state.Logs[dayKey] = DayLog{}
	state.Notes[dayKey] = ""
	return nil
}

func ensureMaps(state *State) {
	if state.Notes == nil {
		state.Notes = map[string]string{}
	}
	if state.Logs == nil {
		state.Logs = map[string]DayLog{}
	}
	for _, key := range DayKeys {
		if _, ok := state.Notes[key]; !ok {
			state.Notes[key] = ""
		}
		if state.Logs[key] == nil {
			state.Logs[key] = DayLog{}
		}
	}
}
