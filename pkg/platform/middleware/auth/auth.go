// Package auth resolves the caller principal at the transport boundary.
//
// Identity arrives from the upstream gateway in one of two shapes: trusted
// identity headers (X-User-Subject / X-User-Roles) or a signed gateway bearer
// token. Either way the outcome is a requestcontext.Principal; the core never
// re-validates signatures, it only compares the values it is handed.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "worklog/pkg/domain-errors"
	"worklog/pkg/platform/httputil"
	"worklog/pkg/platform/middleware/request"
	platformstrings "worklog/pkg/platform/strings"
	"worklog/pkg/requestcontext"
)

// Gateway identity headers, set by the edge after it authenticates the caller.
const (
	HeaderSubject = "X-User-Subject"
	HeaderRoles   = "X-User-Roles"
)

// Claims are the identity claims extracted from a gateway bearer token.
type Claims struct {
	Subject string
	Roles   []string
}

// TokenValidator validates a gateway-issued bearer token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Principal extracts the caller identity into the request context. A bearer
// token wins over identity headers when both are present and a validator is
// configured. Requests without identity pass through anonymous; use
// RequirePrincipal on routes that need an authenticated caller.
func Principal(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			const bearerPrefix = "Bearer "
			if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix); ok && validator != nil {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", request.GetRequestID(ctx),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
					return
				}
				p := requestcontext.Principal{
					ID:    claims.Subject,
					Roles: platformstrings.DedupeAndTrimUpper(claims.Roles),
				}
				next.ServeHTTP(w, r.WithContext(requestcontext.WithPrincipal(ctx, p)))
				return
			}

			if subject := strings.TrimSpace(r.Header.Get(HeaderSubject)); subject != "" {
				p := requestcontext.Principal{
					ID:    subject,
					Roles: platformstrings.DedupeAndTrimUpper(strings.Split(r.Header.Get(HeaderRoles), ",")),
				}
				ctx = requestcontext.WithPrincipal(ctx, p)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePrincipal rejects requests that carry no authenticated caller.
func RequirePrincipal(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if requestcontext.CallerPrincipal(ctx).IsZero() {
				logger.WarnContext(ctx, "unauthorized access - missing identity",
					"request_id", request.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing caller identity"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole rejects authenticated callers lacking all of the given role
// literals. Roles are matched exactly against the normalized set.
func RequireAnyRole(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p := requestcontext.CallerPrincipal(ctx)
			for _, role := range roles {
				if p.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.WarnContext(ctx, "forbidden - missing required role",
				"caller", p.ID,
				"required_roles", roles,
				"request_id", request.GetRequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "insufficient role"))
		})
	}
}
