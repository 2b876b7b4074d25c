package model

import (
	"fmt"
	"strings"
	"time"
)

// Period is the recurrence period of a budget.
type Period string

// Budget periods.
const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Periods lists every valid period.
var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

// ParsePeriod parses a period name case-insensitively.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q (want daily, weekly, monthly or yearly)", ErrInvalidPeriod, s)
	}
	return p, nil
}

// Valid reports whether p is one of Periods.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	default:
		return false
	}
}

// Window returns the half-open [start, end) calendar window of the period
// that contains t. Weeks start on Sunday. Both bounds are midnight UTC.
func (p Period) Window(t time.Time) (time.Time, time.Time) {
	day := DateOf(t).Time
	switch p {
	case PeriodDaily:
		return day, day.AddDate(0, 0, 1)
	case PeriodWeekly:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case PeriodYearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
}
