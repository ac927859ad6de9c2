package domain

import (
	"fmt"
	"strings"
)

const (
	DayOne   = "day1"
	DayTwo   = "day2"
	DayThree = "day3"

	ProgressionRule = "Add reps first → then +5 lb"
	IntensityRule   = "No maxing (RPE 7–8)"
)

type Exercise struct {
	Name       string
	Sets       int
	TargetReps int
	Link       string
}

// TargetText renders the "<sets>×<reps> target" badge.
func (e Exercise) TargetText() string {
	return fmt.Sprintf("%d×%d target", e.Sets, e.TargetReps)
}

type Day struct {
	Key       string
	Title     string
	Note      string
	Exercises []Exercise
}

type Catalog struct {
	days []Day
}

// Builtin is the fixed three-day program.
func Builtin() Catalog {
	return Catalog{days: []Day{
		{
			Key:   DayOne,
			Title: "Day 1 – Lower Body Power",
			Note:  "Goal: strong legs + explosiveness. Leave 2 reps in the tank (RPE ~7–8).",
			Exercises: []Exercise{
				{Name: "Back Squat", Sets: 3, TargetReps: 5, Link: "https://www.youtube.com/watch?v=Dy28eq2PjcM"},
				{Name: "Romanian Deadlift", Sets: 3, TargetReps: 8, Link: "https://www.youtube.com/watch?v=0Y8sJzQGf0k"},
				{Name: "Walking Lunges", Sets: 2, TargetReps: 10, Link: "https://www.youtube.com/watch?v=ReNofXwy_js"},
				{Name: "Box Jumps", Sets: 3, TargetReps: 3, Link: "https://www.youtube.com/watch?v=52r_Ul5k03g"},
				{Name: "Calf Raises", Sets: 2, TargetReps: 15, Link: "https://www.youtube.com/watch?v=k8ipHzKeAkQ"},
			},
		},
		{
			Key:   DayTwo,
			Title: "Day 2 – Upper Body Strength",
			Note:  "Goal: push + pull strength for blocking, tackling, and durability.",
			Exercises: []Exercise{
				{Name: "Bench Press", Sets: 3, TargetReps: 5, Link: "https://www.youtube.com/watch?v=rT7DgCr-3pg"},
				{Name: "Pull-Ups (or Lat Pulldown)", Sets: 3, TargetReps: 6, Link: "https://www.youtube.com/watch?v=eGo4IYlbE5g"},
				{Name: "Dumbbell Shoulder Press", Sets: 3, TargetReps: 8, Link: "https://www.youtube.com/watch?v=B-aVuyhvLHU"},
				{Name: "Barbell Row", Sets: 3, TargetReps: 8, Link: "https://www.youtube.com/watch?v=RQU8wZPbioA"},
				{Name: "Plank Hold (seconds)", Sets: 3, TargetReps: 40, Link: "https://www.youtube.com/watch?v=pSHjTRCQxIw"},
			},
		},
		{
			Key:   DayThree,
			Title: "Day 3 – Speed & Athleticism",
			Note:  "Goal: move heavy + move fast. Fast reps, perfect form, no grinding.",
			Exercises: []Exercise{
				{Name: "Trap Bar Deadlift", Sets: 3, TargetReps: 5, Link: "https://www.youtube.com/watch?v=JWz6KcRz3AI"},
				{Name: "Broad Jumps", Sets: 3, TargetReps: 3, Link: "https://www.youtube.com/watch?v=5Vb5P3X5VOU"},
				// seconds or yards
				{Name: "Sled Push (or Heavy March)", Sets: 4, TargetReps: 20, Link: "https://www.youtube.com/watch?v=U5zrloYWwxw"},
				{Name: "Med Ball Slams", Sets: 3, TargetReps: 8, Link: "https://www.youtube.com/watch?v=9RrR2nJ4zvM"},
				{Name: "Farmer Carries (seconds)", Sets: 3, TargetReps: 40, Link: "https://www.youtube.com/watch?v=lLAw6fUccKA"},
			},
		},
	}}
}

// NewCatalog builds a catalog from arbitrary days; it is validated before use.
func NewCatalog(days []Day) (Catalog, error) {
	c := Catalog{days: cloneDays(days)}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) Days() []Day {
	return cloneDays(c.days)
}

func (c Catalog) Day(key string) (Day, bool) {
	for _, day := range c.days {
		if day.Key == key {
			return cloneDay(day), true
		}
	}
	return Day{}, false
}

func (c Catalog) Exercise(dayKey, name string) (Exercise, bool) {
	day, ok := c.Day(dayKey)
	if !ok {
		return Exercise{}, false
	}
	for _, ex := range day.Exercises {
		if ex.Name == name {
			return ex, true
		}
	}
	return Exercise{}, false
}

// Validate enforces what the day log relies on: exercise names are map keys,
// so they must be unique within a day.
func (c Catalog) Validate() error {
	seenDays := map[string]struct{}{}
	for _, day := range c.days {
		if strings.TrimSpace(day.Key) == "" {
			return fmt.Errorf("day key is required")
		}
		if _, dup := seenDays[day.Key]; dup {
			return fmt.Errorf("duplicate day key %q", day.Key)
		}
		seenDays[day.Key] = struct{}{}

		seen := map[string]struct{}{}
		for _, ex := range day.Exercises {
			if strings.TrimSpace(ex.Name) == "" {
				return fmt.Errorf("%s: exercise name is required", day.Key)
			}
			if _, dup := seen[ex.Name]; dup {
				return fmt.Errorf("%s: duplicate exercise %q", day.Key, ex.Name)
			}
			seen[ex.Name] = struct{}{}
			if ex.Sets <= 0 {
				return fmt.Errorf("%s/%s: set count must be positive", day.Key, ex.Name)
			}
			if ex.TargetReps <= 0 {
				return fmt.Errorf("%s/%s: target reps must be positive", day.Key, ex.Name)
			}
		}
	}
	return nil
}

func cloneDays(days []Day) []Day {
	out := make([]Day, 0, len(days))
	for _, day := range days {
		out = append(out, cloneDay(day))
	}
	return out
}

func cloneDay(day Day) Day {
	day.Exercises = append([]Exercise(nil), day.Exercises...)
	return day
}
