package aggregate

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"worklog/internal/timelog/models"
)

func strptr(s string) *string { return &s }

func entry(owner string, hours float64, date models.Date, serviceID, projectID, workType string) *models.TimeLog {
	l := &models.TimeLog{
		OwnerID:  owner,
		Hours:    hours,
		WorkDate: date,
		WorkType: workType,
	}
	if serviceID != "" {
		l.ServiceID = strptr(serviceID)
	}
	if projectID != "" {
		l.ProjectID = strptr(projectID)
	}
	return l
}

func TestFold(t *testing.T) {
	nov := func(day int) models.Date { return models.NewDate(2025, time.November, day) }

	t.Run("empty input yields zero totals with non-nil maps", func(t *testing.T) {
		totals := Fold(nil)
		assert.Equal(t, 0.0, totals.TotalHours)
		assert.Equal(t, 0, totals.Count)
		assert.NotNil(t, totals.ByService)
		assert.NotNil(t, totals.ByProject)
		assert.Empty(t, totals.ByService)
	})

	t.Run("sums hours and groups per association", func(t *testing.T) {
		logs := []*models.TimeLog{
			entry("e1", 8.0, nov(20), "S1", "", "repair"),
			entry("e1", 7.5, nov(21), "S1", "", "repair"),
			entry("e1", 2.0, nov(21), "", "P1", "admin"),
			entry("e1", 1.0, nov(22), "S2", "P1", ""),
		}
		totals := Fold(logs)
		assert.Equal(t, 18.5, totals.TotalHours)
		assert.Equal(t, 4, totals.Count)
		assert.Equal(t, map[string]float64{"S1": 15.5, "S2": 1.0}, totals.ByService)
		assert.Equal(t, map[string]float64{"P1": 3.0}, totals.ByProject)
	})

	t.Run("record with both associations counts once in the total", func(t *testing.T) {
		totals := Fold([]*models.TimeLog{entry("e1", 4.0, nov(20), "S1", "P1", "")})
		assert.Equal(t, 4.0, totals.TotalHours)
		assert.Equal(t, 1, totals.Count)
		assert.Equal(t, 4.0, totals.ByService["S1"])
		assert.Equal(t, 4.0, totals.ByProject["P1"])
	})

	t.Run("result is independent of input order", func(t *testing.T) {
		logs := []*models.TimeLog{
			entry("e1", 8.0, nov(20), "S1", "", "repair"),
			entry("e1", 7.5, nov(21), "S1", "", "repair"),
			entry("e1", 2.0, nov(21), "", "P1", "admin"),
			entry("e1", 3.25, nov(18), "S2", "P2", "travel"),
			entry("e1", 0.5, nov(19), "S2", "", ""),
		}
		want := Fold(logs)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 10; i++ {
			shuffled := make([]*models.TimeLog, len(logs))
			copy(shuffled, logs)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})
			got := Fold(shuffled)
			assert.Equal(t, want.TotalHours, got.TotalHours)
			assert.Equal(t, want.Count, got.Count)
			assert.Equal(t, want.ByService, got.ByService)
			assert.Equal(t, want.ByProject, got.ByProject)
		}
	})
}

func TestStatistics(t *testing.T) {
	nov := func(day int) models.Date { return models.NewDate(2025, time.November, day) }

	t.Run("empty input yields zeros and no dates", func(t *testing.T) {
		s := Statistics(nil)
		assert.Equal(t, 0.0, s.TotalHours)
		assert.Equal(t, 0, s.Count)
		assert.Equal(t, 0.0, s.AverageHoursPerLog)
		assert.Nil(t, s.FirstDate)
		assert.Nil(t, s.LastDate)
		assert.Empty(t, s.LogsByWorkType)
	})

	t.Run("average is rounded to two decimals", func(t *testing.T) {
		s := Statistics([]*models.TimeLog{
			entry("e1", 5.0, nov(20), "S1", "", "repair"),
			entry("e1", 5.0, nov(21), "S1", "", "repair"),
			entry("e1", 0.1, nov(22), "S1", "", "admin"),
		})
		// 10.1 / 3 = 3.3666... -> 3.37
		assert.Equal(t, 3.37, s.AverageHoursPerLog)
	})

	t.Run("tracks work type counts and date extremes", func(t *testing.T) {
		s := Statistics([]*models.TimeLog{
			entry("e1", 8.0, nov(20), "S1", "", "repair"),
			entry("e1", 7.5, nov(18), "S1", "", "repair"),
			entry("e1", 2.0, nov(25), "", "P1", "admin"),
			entry("e1", 1.0, nov(22), "S2", "", ""),
		})
		assert.Equal(t, map[string]int{"repair": 2, "admin": 1}, s.LogsByWorkType)
		assert.Equal(t, "2025-11-18", s.FirstDate.String())
		assert.Equal(t, "2025-11-25", s.LastDate.String())
	})

	t.Run("single record has identical first and last dates", func(t *testing.T) {
		s := Statistics([]*models.TimeLog{entry("e1", 8.0, nov(20), "S1", "", "")})
		assert.Equal(t, s.FirstDate.String(), s.LastDate.String())
		assert.Equal(t, 8.0, s.AverageHoursPerLog)
	})
}
