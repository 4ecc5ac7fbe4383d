// Package indicators implements the weekly cohort performance-indicator
// engine: it turns a lot's daily field observations into age-aligned weekly
// rows with running totals, derived ratios and an optional comparison against
// the breed's genetic guide. The package is pure — no I/O, no logging — and
// deterministic: the same records and lot always produce the same rows.
package indicators

import (
	"errors"
	"time"
)

// ErrRecordBeforePlacement marks a record dated before the lot's placement.
// Such a record cannot be assigned an age week and is excluded from the
// computation rather than clamped.
var ErrRecordBeforePlacement = errors.New("record predates lot placement")

const daysPerWeek = 7

// ageDays returns the 1-based age in days of a record date relative to the
// placement date. The placement day itself is age day 1. Dates are compared
// at day granularity; time-of-day and zone offsets are discarded.
func ageDays(recordDate, placementDate time.Time) (int, error) {
	record := truncateToDay(recordDate)
	placement := truncateToDay(placementDate)

	if record.Before(placement) {
		return 0, ErrRecordBeforePlacement
	}

	days := int(record.Sub(placement).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// ageWeek maps an age in days onto a 1-based week number: days 1-7 are week
// 1, days 8-14 week 2, and so on.
func ageWeek(days int) int {
	week := (days + daysPerWeek - 1) / daysPerWeek
	if week < 1 {
		week = 1
	}
	return week
}

// weekStartAgeDays returns the age in days of the first day of a week.
func weekStartAgeDays(week int) int {
	return (week-1)*daysPerWeek + 1
}

// weekStartDate returns the calendar date of the first day of a week,
// aligned to the placement date rather than to the first observed record.
func weekStartDate(placementDate time.Time, week int) time.Time {
	return truncateToDay(placementDate).AddDate(0, 0, (week-1)*daysPerWeek)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
