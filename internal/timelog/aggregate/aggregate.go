// Package aggregate computes sums and groupings over time log records.
//
// Everything here is a pure fold over its input: no store access, no side
// effects, and results independent of input ordering.
package aggregate

import (
	"math"

	"worklog/internal/timelog/models"
)

// Totals carries the aggregation for one set of records. Records without a
// service association are excluded from ByService (likewise for projects) but
// always count toward TotalHours and Count.
type Totals struct {
	TotalHours float64
	Count      int
	ByService  map[string]float64
	ByProject  map[string]float64
}

// Fold sums hours and groups them per work item. Empty input yields zero
// totals and empty (non-nil) maps.
func Fold(logs []*models.TimeLog) Totals {
	t := Totals{
		ByService: make(map[string]float64),
		ByProject: make(map[string]float64),
	}
	for _, l := range logs {
		t.TotalHours += l.Hours
		t.Count++
		if l.ServiceID != nil && *l.ServiceID != "" {
			t.ByService[*l.ServiceID] += l.Hours
		}
		if l.ProjectID != nil && *l.ProjectID != "" {
			t.ByProject[*l.ProjectID] += l.Hours
		}
	}
	return t
}

// Stats is the all-time overview for one owner's records. FirstDate and
// LastDate are nil for empty input.
type Stats struct {
	TotalHours         float64
	Count              int
	AverageHoursPerLog float64
	LogsByWorkType     map[string]int
	HoursByService     map[string]float64
	HoursByProject     map[string]float64
	FirstDate          *models.Date
	LastDate           *models.Date
}

// Statistics extends Fold with per-work-type counts, the average hours per
// log (rounded to two decimals, 0.0 for empty input), and the earliest and
// latest work dates.
func Statistics(logs []*models.TimeLog) Stats {
	totals := Fold(logs)
	s := Stats{
		TotalHours:     totals.TotalHours,
		Count:          totals.Count,
		LogsByWorkType: make(map[string]int),
		HoursByService: totals.ByService,
		HoursByProject: totals.ByProject,
	}

	for _, l := range logs {
		if l.WorkType != "" {
			s.LogsByWorkType[l.WorkType]++
		}
		d := l.WorkDate
		if s.FirstDate == nil || d.Before(*s.FirstDate) {
			first := d
			s.FirstDate = &first
		}
		if s.LastDate == nil || d.After(*s.LastDate) {
			last := d
			s.LastDate = &last
		}
	}

	if s.Count > 0 {
		s.AverageHoursPerLog = round2(s.TotalHours / float64(s.Count))
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
