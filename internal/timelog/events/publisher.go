// Package events defines the outbound notification sink for time log
// lifecycle events. Nothing consumes these yet; a message-bus integration
// slots in by replacing the Noop publisher.
package events

import (
	"context"
	"log/slog"

	"worklog/internal/timelog/models"
)

// Publisher is notified after a time log has been persisted.
type Publisher interface {
	TimeLogged(ctx context.Context, log *models.TimeLog) error
}

// Noop discards events, logging at debug for visibility.
type Noop struct {
	logger *slog.Logger
}

// NewNoop constructs the placeholder publisher.
func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) TimeLogged(ctx context.Context, log *models.TimeLog) error {
	if n.logger != nil && log != nil {
		n.logger.DebugContext(ctx, "noop publish time logged event",
			"log_id", log.ID,
			"employee_id", log.OwnerID,
		)
	}
	return nil
}
