package dto

import "time"

type SetOutput struct {
	Number int
	Weight string
	Reps   string
}

type ExerciseLogOutput struct {
	Name       string
	Sets       int
	TargetReps int
	TargetText string
	Link       string
	Entries    []SetOutput
}

type DayViewOutput struct {
	Key       string
	Title     string
	Note      string
	Date      string
	Notes     string
	Exercises []ExerciseLogOutput
}

type Profile struct {
	Name     string
	Age      string
	Grade    string
	Height   string
	Weight   string
	Position string
	Goals    string
}

type StateOutput struct {
	ActiveView   string
	SelectedDate string
	Profile      Profile
	HistoryCount int
}

// SetFieldInput addresses a set by its 1-based number, as shown to users.
type SetFieldInput struct {
	DayKey   string
	Exercise string
	Set      int
	Weight   *string
	Reps     *string
}

type HistoryQueryInput struct {
	DayKey string
	From   string
	To     string
	Limit  int
}

type HistorySummaryOutput struct {
	ID         string
	SavedAt    time.Time
	Date       string
	DayKey     string
	DayTitle   string
	Athlete    string
	LoggedSets int
	HasNotes   bool
}

type HistoryEntryOutput struct {
	ID       string
	SavedAt  time.Time
	Date     string
	DayKey   string
	DayTitle string
	Profile  Profile
	Notes    string
	Details  string
}

type ExportOutput struct {
	Dir   string
	Paths []string
}

type VideoOutput struct {
	Exercise string
	Link     string
	Opened   bool
}
