package dto

type ExerciseOutput struct {
	Name       string
	Sets       int
	TargetReps int
	TargetText string
	Link       string
}

type DayOutput struct {
	Key       string
	Title     string
	Note      string
	Exercises []ExerciseOutput
}

type RulesOutput struct {
	Progression string
	Intensity   string
}
