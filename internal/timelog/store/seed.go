// Package store holds cross-implementation helpers for the time log stores.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"worklog/internal/timelog/models"
	"worklog/pkg/requestcontext"
)

// Seeder is the minimal store surface sample-data seeding needs; both the
// memory and postgres stores satisfy it.
type Seeder interface {
	Insert(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error)
	ListAll(ctx context.Context) ([]*models.TimeLog, error)
}

// SeedSampleLogs populates a handful of entries for local development.
// Skipped when the store already holds data so restarts don't duplicate.
func SeedSampleLogs(ctx context.Context, s Seeder, logger *slog.Logger) error {
	existing, err := s.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("check existing time logs: %w", err)
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "time logs already present, skipping sample data",
			"count", len(existing))
		return nil
	}

	today := models.DateOf(requestcontext.Now(ctx))
	svcOil := "svc-oil-change"
	svcBrakes := "svc-brake-repair"
	prjFleet := "prj-fleet-overhaul"

	samples := []*models.TimeLog{
		{OwnerID: "emp-001", ServiceID: &svcOil, Hours: 2.5, WorkDate: today.AddDays(-1), Description: "Oil change and inspection", WorkType: "maintenance"},
		{OwnerID: "emp-001", ServiceID: &svcBrakes, Hours: 6.0, WorkDate: today.AddDays(-2), Description: "Front brake pad replacement", WorkType: "repair"},
		{OwnerID: "emp-001", ProjectID: &prjFleet, Hours: 8.0, WorkDate: today.AddDays(-5), Description: "Fleet vehicle diagnostics", WorkType: "diagnostics"},
		{OwnerID: "emp-002", ServiceID: &svcOil, Hours: 1.5, WorkDate: today.AddDays(-1), Description: "Oil change", WorkType: "maintenance"},
		{OwnerID: "emp-002", ProjectID: &prjFleet, Hours: 7.25, WorkDate: today, Description: "Fleet intake paperwork", WorkType: "admin"},
	}

	for _, sample := range samples {
		if _, err := s.Insert(ctx, sample); err != nil {
			return fmt.Errorf("seed time log for %s: %w", sample.OwnerID, err)
		}
	}

	logger.InfoContext(ctx, "seeded sample time logs", "count", len(samples))
	return nil
}
