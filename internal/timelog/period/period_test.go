package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/timelog/models"
	dErrors "worklog/pkg/domain-errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"daily", Daily},
		{"weekly", Weekly},
		{"monthly", Monthly},
		{"WEEKLY", Weekly},
		{" Monthly ", Monthly},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown literal is rejected", func(t *testing.T) {
		for _, bad := range []string{"yearly", "", "week", "quarterly"} {
			_, err := Parse(bad)
			require.Error(t, err, "expected %q to be rejected", bad)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		}
	})
}

func TestRange(t *testing.T) {
	t.Run("daily is a single-day window", func(t *testing.T) {
		ref := models.NewDate(2025, time.November, 21)
		start, end := Daily.Range(ref)
		assert.True(t, start.Equal(ref))
		assert.True(t, end.Equal(ref))
	})

	t.Run("weekly anchors on Monday", func(t *testing.T) {
		// 2025-11-21 is a Friday; its week runs Mon 17th through Sun 23rd.
		start, end := Weekly.Range(models.NewDate(2025, time.November, 21))
		assert.Equal(t, "2025-11-17", start.String())
		assert.Equal(t, "2025-11-23", end.String())
	})

	t.Run("weekly on a Monday starts that day", func(t *testing.T) {
		start, end := Weekly.Range(models.NewDate(2025, time.November, 17))
		assert.Equal(t, "2025-11-17", start.String())
		assert.Equal(t, "2025-11-23", end.String())
	})

	t.Run("weekly on a Sunday ends that day", func(t *testing.T) {
		start, end := Weekly.Range(models.NewDate(2025, time.November, 23))
		assert.Equal(t, "2025-11-17", start.String())
		assert.Equal(t, "2025-11-23", end.String())
	})

	t.Run("weekly spans month boundaries", func(t *testing.T) {
		// 2025-12-01 is a Monday.
		start, end := Weekly.Range(models.NewDate(2025, time.December, 3))
		assert.Equal(t, "2025-12-01", start.String())
		assert.Equal(t, "2025-12-07", end.String())
	})

	t.Run("monthly covers the whole month", func(t *testing.T) {
		start, end := Monthly.Range(models.NewDate(2025, time.November, 21))
		assert.Equal(t, "2025-11-01", start.String())
		assert.Equal(t, "2025-11-30", end.String())
	})

	t.Run("monthly handles February in a leap year", func(t *testing.T) {
		start, end := Monthly.Range(models.NewDate(2024, time.February, 10))
		assert.Equal(t, "2024-02-01", start.String())
		assert.Equal(t, "2024-02-29", end.String())
	})

	t.Run("monthly handles December", func(t *testing.T) {
		start, end := Monthly.Range(models.NewDate(2025, time.December, 15))
		assert.Equal(t, "2025-12-01", start.String())
		assert.Equal(t, "2025-12-31", end.String())
	})
}
