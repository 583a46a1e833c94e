package models

import "time"

// DailyActivity is the per-account, per-day aggregate behind the heatmap.
type DailyActivity struct {
	AccountID            string
	Date                 time.Time
	WorkoutCount         int
	TotalDurationMinutes int
}

// HeatmapPoint is one day of the heatmap series.
type HeatmapPoint struct {
	Date  time.Time
	Count int
}

// RecordResult describes the outcome of recording a workout. A non-empty
// Skipped list means some exercise names were not found in the catalog.
type RecordResult struct {
	SessionID string
	Recorded  int
	Skipped   []string
}

// Partial reports whether some exercises were dropped.
func (r RecordResult) Partial() bool {
	return len(r.Skipped) > 0
}
