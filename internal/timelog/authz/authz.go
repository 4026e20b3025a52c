// Package authz holds the ownership policy for time log records.
package authz

import (
	"worklog/internal/timelog/models"
	dErrors "worklog/pkg/domain-errors"
	"worklog/pkg/requestcontext"
)

// Elevated role literals. Both the bare and ROLE_-prefixed forms occur in
// gateway tokens, so the policy accepts either.
var elevatedRoles = map[string]struct{}{
	"ADMIN":            {},
	"ROLE_ADMIN":       {},
	"SUPER_ADMIN":      {},
	"ROLE_SUPER_ADMIN": {},
}

// ElevatedRoles returns the accepted elevated role literals, for the router's
// role requirement on administrative listings.
func ElevatedRoles() []string {
	roles := make([]string, 0, len(elevatedRoles))
	for r := range elevatedRoles {
		roles = append(roles, r)
	}
	return roles
}

// IsElevated reports whether any of the roles is exempt from the ownership
// restriction.
func IsElevated(roles []string) bool {
	for _, r := range roles {
		if _, ok := elevatedRoles[r]; ok {
			return true
		}
	}
	return false
}

// Authorize decides whether caller may read or mutate rec. Elevated callers
// are always allowed; otherwise the caller must be the record's owner.
// Every other combination is denied - there is no default-allow path.
func Authorize(rec *models.TimeLog, caller requestcontext.Principal) error {
	if rec == nil {
		return dErrors.New(dErrors.CodeNotFound, "time log not found")
	}
	if IsElevated(caller.Roles) {
		return nil
	}
	if caller.ID != "" && rec.OwnerID == caller.ID {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "you are not authorized to access this time log")
}
