// Package engine folds computed emissions into period totals and compares
// them against reference baselines to produce a performance classification
// and a ranked list of actionable tips.
//
// All functions are pure and stateless; nothing here persists between calls.
package engine

import (
	"fmt"
	"time"
)

// Granularity selects the period bucketing rule.
type Granularity string

// Supported period granularities.
const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is a supported granularity.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	default:
		return false
	}
}

// ParseGranularity converts a user-supplied string into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q (want day, week, or month)", ErrInvalidGranularity, s)
	}
	return g, nil
}

// PeriodOf returns the half-open interval [start, end) of the period
// containing t at granularity g, evaluated in loc.
//
// Periods are calendar-aligned: days run midnight to midnight, weeks start
// on Monday (ISO 8601), months are calendar months. A nil loc defaults to
// time.Local. Calendar alignment was chosen over rolling windows so that two
// callers bucketing the same records always agree on boundaries.
func PeriodOf(t time.Time, g Granularity, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)

	switch g {
	case GranularityWeek:
		day := startOfDay(t)
		// time.Weekday numbers Sunday as 0; shift so Monday is 0.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case GranularityMonth:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		start := startOfDay(t)
		return start, start.AddDate(0, 0, 1)
	}
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysIn returns the mean number of days a period at granularity g spans,
// used to scale per-day baselines. Months use the mean Gregorian month
// length so classification does not jump between a 28-day February and a
// 31-day January against the same habits.
func (g Granularity) DaysIn() float64 {
	switch g {
	case GranularityWeek:
		return 7.0
	case GranularityMonth:
		return 30.4375
	default:
		return 1.0
	}
}
