// Package service orchestrates the time log store, ownership policy, and
// aggregation into the public operations the transport layer calls.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"worklog/internal/timelog/authz"
	"worklog/internal/timelog/cache"
	"worklog/internal/timelog/events"
	timelogmetrics "worklog/internal/timelog/metrics"
	"worklog/internal/timelog/models"
	dErrors "worklog/pkg/domain-errors"
	"worklog/pkg/platform/sentinel"
	"worklog/pkg/requestcontext"
)

// Store is the persistence contract the service depends on. Declared here,
// consumer-side; the memory and postgres stores satisfy it.
type Store interface {
	Insert(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error)
	GetByID(ctx context.Context, id string) (*models.TimeLog, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.TimeLog, error)
	ListAll(ctx context.Context) ([]*models.TimeLog, error)
	ListByOwnerAndDateRange(ctx context.Context, ownerID string, start, end models.Date) ([]*models.TimeLog, error)
	ListByWorkItem(ctx context.Context, workItemID string) ([]*models.TimeLog, error)
	Update(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error)
	Delete(ctx context.Context, id string) error
	TotalHoursByOwner(ctx context.Context, ownerID string) (*float64, error)
}

// Service implements the time log operations.
type Service struct {
	store     Store
	logger    *slog.Logger
	metrics   *timelogmetrics.Metrics
	publisher events.Publisher
	cache     *cache.SummaryCache
	tracer    trace.Tracer
}

// Option configures optional service collaborators.
type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *timelogmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithCache enables the Redis summary cache. Without it summaries are
// computed per call.
func WithCache(c *cache.SummaryCache) Option {
	return func(s *Service) { s.cache = c }
}

// New constructs a Service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("time log store is required")
	}
	s := &Service{
		store:  store,
		tracer: otel.Tracer("worklog/timelog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.publisher == nil {
		s.publisher = events.NewNoop(s.logger)
	}
	return s, nil
}

// Create records a new entry owned by ownerID. The owner is always the
// requesting principal, so no authorization check applies.
func (s *Service) Create(ctx context.Context, ownerID string, req models.CreateTimeLogRequest) (*models.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.Create")
	defer span.End()

	if ownerID == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "owner id is required")
	}
	if req.Hours < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "hours must not be negative")
	}

	log := &models.TimeLog{
		OwnerID:     ownerID,
		ServiceID:   req.ServiceID,
		ProjectID:   req.ProjectID,
		Hours:       req.Hours,
		WorkDate:    req.WorkDate,
		Description: req.Description,
		WorkType:    req.WorkType,
	}

	saved, err := s.store.Insert(ctx, log)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create time log")
	}

	s.logger.InfoContext(ctx, "time log created",
		"log_id", saved.ID,
		"employee_id", saved.OwnerID,
		"hours", saved.Hours,
	)
	if s.metrics != nil {
		s.metrics.LogsCreated.Inc()
	}
	s.invalidate(ctx, saved.OwnerID)

	// Notification is a best-effort placeholder; a failed publish never
	// rolls back the write.
	if err := s.publisher.TimeLogged(ctx, saved); err != nil {
		s.logger.WarnContext(ctx, "time logged event publish failed",
			"log_id", saved.ID,
			"error", err,
		)
	}

	return saved, nil
}

// GetByID fetches one record, enforcing the ownership policy. A missing
// record reports NotFound; a record the caller may not see reports Forbidden.
func (s *Service) GetByID(ctx context.Context, id string, caller requestcontext.Principal) (*models.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.GetByID")
	defer span.End()

	log, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load time log")
	}
	if err := authz.Authorize(log, caller); err != nil {
		s.logger.WarnContext(ctx, "time log access denied",
			"log_id", id,
			"caller", caller.ID,
		)
		return nil, err
	}
	return log, nil
}

// ListMine lists the owner's records. With both range bounds present the
// list is filtered inclusively; otherwise all records, newest first.
func (s *Service) ListMine(ctx context.Context, ownerID string, from, to *models.Date) ([]*models.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.ListMine")
	defer span.End()

	if from == nil || to == nil {
		logs, err := s.store.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list time logs")
		}
		return logs, nil
	}
	logs, err := s.store.ListByOwnerAndDateRange(ctx, ownerID, *from, *to)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list time logs")
	}
	return logs, nil
}

// ListAll lists every record, optionally date-filtered. The elevated-role
// requirement is enforced at the transport boundary, not re-checked here.
func (s *Service) ListAll(ctx context.Context, from, to *models.Date) ([]*models.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.ListAll")
	defer span.End()

	logs, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list time logs")
	}
	if from == nil || to == nil {
		return logs, nil
	}
	filtered := make([]*models.TimeLog, 0, len(logs))
	for _, log := range logs {
		if log.WorkDate.In(*from, *to) {
			filtered = append(filtered, log)
		}
	}
	return filtered, nil
}

// ListForWorkItem lists records attributed to a work item through either
// association. Open to any authenticated caller.
func (s *Service) ListForWorkItem(ctx context.Context, workItemID string) ([]*models.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.ListForWorkItem")
	defer span.End()

	logs, err := s.store.ListByWorkItem(ctx, workItemID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list time logs for work item")
	}
	return logs, nil
}

// Update applies a per-field patch to an existing record under the ownership
// policy. A patch with no fields set still refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, caller requestcontext.Principal, patch models.UpdateTimeLogRequest) (*models.TimeLog, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.Update")
	defer span.End()

	if patch.Hours != nil && *patch.Hours < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "hours must not be negative")
	}

	log, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load time log")
	}
	if err := authz.Authorize(log, caller); err != nil {
		s.logger.WarnContext(ctx, "time log update denied",
			"log_id", id,
			"caller", caller.ID,
		)
		return nil, err
	}

	log.ApplyPatch(patch)
	updated, err := s.store.Update(ctx, log)
	if err != nil {
		return nil, translateStoreErr(err, "failed to update time log")
	}

	s.logger.InfoContext(ctx, "time log updated",
		"log_id", updated.ID,
		"employee_id", updated.OwnerID,
	)
	if s.metrics != nil {
		s.metrics.LogsUpdated.Inc()
	}
	s.invalidate(ctx, updated.OwnerID)
	return updated, nil
}

// Delete removes a record under the ownership policy.
func (s *Service) Delete(ctx context.Context, id string, caller requestcontext.Principal) error {
	ctx, span := s.tracer.Start(ctx, "timelog.Delete")
	defer span.End()

	log, err := s.store.GetByID(ctx, id)
	if err != nil {
		return translateStoreErr(err, "failed to load time log")
	}
	if err := authz.Authorize(log, caller); err != nil {
		s.logger.WarnContext(ctx, "time log delete denied",
			"log_id", id,
			"caller", caller.ID,
		)
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreErr(err, "failed to delete time log")
	}

	s.logger.InfoContext(ctx, "time log deleted",
		"log_id", id,
		"employee_id", log.OwnerID,
	)
	if s.metrics != nil {
		s.metrics.LogsDeleted.Inc()
	}
	s.invalidate(ctx, log.OwnerID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, ownerID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, ownerID)
	}
}

func translateStoreErr(err error, message string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "time log not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, message)
}
