package models

import "time"

// WorkoutSession is one logged workout. Date is the UTC calendar day the
// workout counts towards.
type WorkoutSession struct {
	ID              string
	AccountID       string
	Date            time.Time
	StartTime       time.Time
	DurationMinutes int
}

// ExerciseType is an entry of the fixed exercise catalog.
type ExerciseType struct {
	ID       int64
	Name     string
	Category string
}

// ExerciseInput is an exercise as submitted by a client, before the name is
// resolved against the catalog.
type ExerciseInput struct {
	Name            string
	Sets            int
	Reps            int
	DurationSeconds int
}
