package domain

import "github.com/AlibekovAA/exercise-tracker/internal/tracker/coerce"

// Exercise is immutable once appended. Date holds the rendered calendar
// date ("Fri Jan 05 2024" or "Invalid Date").
type Exercise struct {
	Description string
	Duration    coerce.Number
	Date        string
}

// ExerciseEntry is the flat result of appending an exercise.
type ExerciseEntry struct {
	ID       ID
	Username string
	Exercise Exercise
}

type LogView struct {
	ID       ID
	Username string
	Count    int
	Log      []Exercise
}
