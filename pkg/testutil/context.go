package testutil

import (
	"net/http"
	"strings"

	"worklog/pkg/requestcontext"
)

// WithPrincipal adds a caller principal to the request context. This
// simulates what the auth middleware would do for an authenticated request.
func WithPrincipal(req *http.Request, id string, roles ...string) *http.Request {
	p := requestcontext.Principal{ID: id, Roles: normalizeRoles(roles)}
	return req.WithContext(requestcontext.WithPrincipal(req.Context(), p))
}

// WithGatewayHeaders sets the trusted identity headers the way the upstream
// gateway would, for tests that exercise the middleware chain itself.
func WithGatewayHeaders(req *http.Request, id string, roles ...string) *http.Request {
	req.Header.Set("X-User-Subject", id)
	req.Header.Set("X-User-Roles", strings.Join(roles, ","))
	return req
}

func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, strings.ToUpper(strings.TrimSpace(r)))
	}
	return out
}
