package service

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	dErrors "worklog/pkg/domain-errors"
	"worklog/pkg/requestcontext"

	"worklog/internal/timelog/aggregate"
	"worklog/internal/timelog/models"
	"worklog/internal/timelog/period"
)

// Summarize aggregates the owner's entries over the period containing the
// reference date. An unknown period name fails before any store access.
func (s *Service) Summarize(ctx context.Context, ownerID, periodName string, ref models.Date) (*models.SummaryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.Summarize")
	defer span.End()

	kind, err := period.Parse(periodName)
	if err != nil {
		return nil, err
	}
	if ref.IsZero() {
		ref = models.DateOf(requestcontext.Now(ctx))
	}
	start, end := kind.Range(ref)

	if s.metrics != nil {
		timer := prometheus.NewTimer(s.metrics.SummaryDuration)
		defer timer.ObserveDuration()
	}

	var resp models.SummaryResponse
	suffix := fmt.Sprintf("summary:%s:%s", kind, ref)
	hit, err := s.cached(ctx, ownerID, suffix, &resp, func(ctx context.Context) (any, error) {
		logs, err := s.store.ListByOwnerAndDateRange(ctx, ownerID, start, end)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to summarize time logs")
		}
		totals := aggregate.Fold(logs)
		return &models.SummaryResponse{
			EmployeeID: ownerID,
			Period:     kind.String(),
			StartDate:  start,
			EndDate:    end,
			TotalHours: totals.TotalHours,
			Count:      totals.Count,
			ByService:  totals.ByService,
			ByProject:  totals.ByProject,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.countCache(hit)
	return &resp, nil
}

// Statistics computes the all-time overview for one owner.
func (s *Service) Statistics(ctx context.Context, ownerID string) (*models.StatisticsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.Statistics")
	defer span.End()

	if s.metrics != nil {
		timer := prometheus.NewTimer(s.metrics.SummaryDuration)
		defer timer.ObserveDuration()
	}

	var resp models.StatisticsResponse
	hit, err := s.cached(ctx, ownerID, "stats", &resp, func(ctx context.Context) (any, error) {
		logs, err := s.store.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute time log statistics")
		}
		stats := aggregate.Statistics(logs)
		return &models.StatisticsResponse{
			EmployeeID:         ownerID,
			TotalLogs:          stats.Count,
			TotalHours:         stats.TotalHours,
			AverageHoursPerLog: stats.AverageHoursPerLog,
			LogsByWorkType:     stats.LogsByWorkType,
			HoursByService:     stats.HoursByService,
			HoursByProject:     stats.HoursByProject,
			FirstLogDate:       stats.FirstDate,
			LastLogDate:        stats.LastDate,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.countCache(hit)
	return &resp, nil
}

// TotalHours reports the lifetime hour sum for one owner. An owner with no
// entries reports zero.
func (s *Service) TotalHours(ctx context.Context, ownerID string) (*models.TotalHoursResponse, error) {
	ctx, span := s.tracer.Start(ctx, "timelog.TotalHours")
	defer span.End()

	total, err := s.store.TotalHoursByOwner(ctx, ownerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to total time log hours")
	}
	resp := &models.TotalHoursResponse{EmployeeID: ownerID}
	if total != nil {
		resp.TotalHours = *total
	}
	return resp, nil
}

// cached runs compute through the summary cache when one is configured, or
// directly otherwise. The direct path assigns the computed value to dest.
func (s *Service) cached(ctx context.Context, ownerID, suffix string, dest any, compute func(context.Context) (any, error)) (bool, error) {
	if s.cache != nil {
		return s.cache.GetOrCompute(ctx, ownerID, suffix, dest, compute)
	}
	v, err := compute(ctx)
	if err != nil {
		return false, err
	}
	switch d := dest.(type) {
	case *models.SummaryResponse:
		*d = *v.(*models.SummaryResponse)
	case *models.StatisticsResponse:
		*d = *v.(*models.StatisticsResponse)
	default:
		return false, dErrors.New(dErrors.CodeInternal, "unsupported summary destination")
	}
	return false, nil
}

func (s *Service) countCache(hit bool) {
	if s.metrics == nil || s.cache == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.Inc()
	} else {
		s.metrics.CacheMisses.Inc()
	}
}
