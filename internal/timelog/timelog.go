// Package timelog exposes the time log domain: record keeping, ownership
// policy, and period aggregation.
package timelog

import (
	"log/slog"

	"worklog/internal/timelog/handler"
	"worklog/internal/timelog/service"
)

// Service exposes time log orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the time log service.
type Handler = handler.Handler

// NewService constructs the time log service with required dependencies.
func NewService(store service.Store, opts ...service.Option) (*Service, error) {
	return service.New(store, opts...)
}

// NewHandler constructs an HTTP handler for the time log routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
