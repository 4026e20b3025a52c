// Package memory provides the in-memory time log store used by unit tests
// and dependency-free local runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"worklog/internal/timelog/models"
	"worklog/pkg/platform/sentinel"
	"worklog/pkg/requestcontext"
)

// Store keeps records in a map guarded by a RWMutex. Every mutation holds the
// write lock for its whole duration, so each operation is atomic with respect
// to concurrent readers, matching the transaction boundary the SQL store gets
// from single-statement mutations.
type Store struct {
	mu   sync.RWMutex
	logs map[string]*models.TimeLog
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{logs: make(map[string]*models.TimeLog)}
}

// Insert assigns an ID and timestamps, persists the record, and returns the
// stored copy.
func (s *Store) Insert(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := log.Clone()
	stored.ID = uuid.NewString()
	now := requestcontext.Now(ctx)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.logs[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID returns the record or sentinel.ErrNotFound.
func (s *Store) GetByID(_ context.Context, id string) (*models.TimeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.logs[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return log.Clone(), nil
}

// ListByOwner returns the owner's records ordered by work date, newest first.
func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]*models.TimeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TimeLog, 0)
	for _, log := range s.logs {
		if log.OwnerID == ownerID {
			out = append(out, log.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListAll returns every record ordered by work date, newest first.
func (s *Store) ListAll(_ context.Context) ([]*models.TimeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TimeLog, 0, len(s.logs))
	for _, log := range s.logs {
		out = append(out, log.Clone())
	}
	sortNewestFirst(out)
	return out, nil
}

// ListByOwnerAndDateRange returns the owner's records with
// start <= workDate <= end, both bounds inclusive.
func (s *Store) ListByOwnerAndDateRange(_ context.Context, ownerID string, start, end models.Date) ([]*models.TimeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TimeLog, 0)
	for _, log := range s.logs {
		if log.OwnerID == ownerID && log.WorkDate.In(start, end) {
			out = append(out, log.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListByWorkItem returns records attributed to the work item through either
// the service or the project association.
func (s *Store) ListByWorkItem(_ context.Context, workItemID string) ([]*models.TimeLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.TimeLog, 0)
	for _, log := range s.logs {
		if matches(log.ServiceID, workItemID) || matches(log.ProjectID, workItemID) {
			out = append(out, log.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// Update overwrites the stored record's mutable fields and refreshes
// UpdatedAt. OwnerID and CreatedAt are preserved from the stored record.
func (s *Store) Update(ctx context.Context, log *models.TimeLog) (*models.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.logs[log.ID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	stored := log.Clone()
	stored.OwnerID = existing.OwnerID
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = requestcontext.Now(ctx)

	s.logs[stored.ID] = stored
	return stored.Clone(), nil
}

// Delete removes the record or returns sentinel.ErrNotFound.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

// ExistsByID reports whether a record with the ID is stored.
func (s *Store) ExistsByID(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.logs[id]
	return ok, nil
}

// TotalHoursByOwner sums the owner's hours. Returns nil, not zero, when the
// owner has no records so callers can distinguish "no data" from "0 hours".
func (s *Store) TotalHoursByOwner(_ context.Context, ownerID string) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	found := false
	for _, log := range s.logs {
		if log.OwnerID == ownerID {
			total += log.Hours
			found = true
		}
	}
	if !found {
		return nil, nil
	}
	return &total, nil
}

func matches(assoc *string, id string) bool {
	return assoc != nil && id != "" && *assoc == id
}

func sortNewestFirst(logs []*models.TimeLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].WorkDate.Equal(logs[j].WorkDate) {
			return logs[i].WorkDate.After(logs[j].WorkDate)
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
}
