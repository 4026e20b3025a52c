// Package period resolves a summary period kind and reference date into an
// inclusive calendar date range.
package period

import (
	"strings"
	"time"

	"worklog/internal/timelog/models"
	dErrors "worklog/pkg/domain-errors"
)

// Kind is a summary granularity. Only the literals below are valid; anything
// else is rejected at parse time rather than silently defaulted.
type Kind string

const (
	Daily   Kind = "daily"
	Weekly  Kind = "weekly"
	Monthly Kind = "monthly"
)

// Parse validates a period literal, case-insensitively.
func Parse(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	default:
		return "", dErrors.Newf(dErrors.CodeBadRequest, "invalid period %q: must be daily, weekly, or monthly", s)
	}
}

// Range resolves the inclusive [start, end] window containing ref.
//
// Weeks are Monday-anchored regardless of locale: start is the most recent
// Monday on or before ref, end the following Sunday.
func (k Kind) Range(ref models.Date) (start, end models.Date) {
	switch k {
	case Weekly:
		// time.Weekday counts Sunday as 0; shift so Monday is 0.
		offset := (int(ref.Weekday()) + 6) % 7
		start = ref.AddDays(-offset)
		end = start.AddDays(6)
	case Monthly:
		start = models.NewDate(ref.Year(), ref.Month(), 1)
		// Day zero of the next month normalizes to this month's last day.
		end = models.DateOf(time.Date(ref.Year(), ref.Month()+1, 0, 0, 0, 0, 0, time.UTC))
	default: // Daily
		start, end = ref, ref
	}
	return start, end
}

func (k Kind) String() string { return string(k) }
