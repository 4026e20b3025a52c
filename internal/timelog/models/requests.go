package models

import (
	dErrors "worklog/pkg/domain-errors"
)

// MaxHoursPerEntry bounds one log entry; enforced at the boundary, the core
// invariant is only hours >= 0.
const MaxHoursPerEntry = 24.0

// CreateTimeLogRequest carries the caller-supplied fields for a new entry.
// The owner is never part of the payload; it is always the authenticated
// principal.
type CreateTimeLogRequest struct {
	ServiceID   *string `json:"serviceId,omitempty"`
	ProjectID   *string `json:"projectId,omitempty"`
	Hours       float64 `json:"hours"`
	WorkDate    Date    `json:"date"`
	Description string  `json:"description,omitempty"`
	WorkType    string  `json:"workType,omitempty"`
}

// Validate enforces boundary constraints. today is the request-scoped
// calendar date used for the not-in-future check.
func (r CreateTimeLogRequest) Validate(today Date) error {
	if r.Hours < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "hours must not be negative")
	}
	if r.Hours > MaxHoursPerEntry {
		return dErrors.Newf(dErrors.CodeBadRequest, "hours must not exceed %.0f per entry", MaxHoursPerEntry)
	}
	if r.WorkDate.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "date is required")
	}
	if r.WorkDate.After(today) {
		return dErrors.New(dErrors.CodeBadRequest, "date must not be in the future")
	}
	if emptyID(r.ServiceID) && emptyID(r.ProjectID) {
		return dErrors.New(dErrors.CodeBadRequest, "a serviceId or projectId is required")
	}
	return nil
}

// UpdateTimeLogRequest is a per-field patch: nil leaves the stored value
// unchanged, a present value overwrites it. There is no way to clear an
// association once set, matching the create-time requirement that at least
// one exists.
type UpdateTimeLogRequest struct {
	ServiceID   *string  `json:"serviceId,omitempty"`
	ProjectID   *string  `json:"projectId,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	WorkDate    *Date    `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
	WorkType    *string  `json:"workType,omitempty"`
}

// Validate checks only the fields that are present.
func (r UpdateTimeLogRequest) Validate(today Date) error {
	if r.Hours != nil {
		if *r.Hours < 0 {
			return dErrors.New(dErrors.CodeBadRequest, "hours must not be negative")
		}
		if *r.Hours > MaxHoursPerEntry {
			return dErrors.Newf(dErrors.CodeBadRequest, "hours must not exceed %.0f per entry", MaxHoursPerEntry)
		}
	}
	if r.WorkDate != nil {
		if r.WorkDate.IsZero() {
			return dErrors.New(dErrors.CodeBadRequest, "date must not be empty")
		}
		if r.WorkDate.After(today) {
			return dErrors.New(dErrors.CodeBadRequest, "date must not be in the future")
		}
	}
	return nil
}

func emptyID(s *string) bool { return s == nil || *s == "" }
