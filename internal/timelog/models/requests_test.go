package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "worklog/pkg/domain-errors"
)

func validCreate(t *testing.T) CreateTimeLogRequest {
	t.Helper()
	svc := "svc-oil-change"
	date, err := ParseDate("2025-11-20")
	require.NoError(t, err)
	return CreateTimeLogRequest{
		ServiceID: &svc,
		Hours:     4,
		WorkDate:  date,
	}
}

func TestCreateValidate(t *testing.T) {
	today, err := ParseDate("2025-11-21")
	require.NoError(t, err)

	assert.NoError(t, validCreate(t).Validate(today))

	req := validCreate(t)
	req.Hours = -0.5
	assert.True(t, dErrors.HasCode(req.Validate(today), dErrors.CodeBadRequest))

	req = validCreate(t)
	req.Hours = 24.5
	assert.True(t, dErrors.HasCode(req.Validate(today), dErrors.CodeBadRequest))

	req = validCreate(t)
	req.WorkDate = Date{}
	assert.True(t, dErrors.HasCode(req.Validate(today), dErrors.CodeBadRequest))

	req = validCreate(t)
	req.WorkDate = today.AddDays(1)
	assert.True(t, dErrors.HasCode(req.Validate(today), dErrors.CodeBadRequest))

	req = validCreate(t)
	req.ServiceID = nil
	assert.True(t, dErrors.HasCode(req.Validate(today), dErrors.CodeBadRequest))

	// a project association alone satisfies the requirement
	req = validCreate(t)
	req.ServiceID = nil
	prj := "prj-fleet-overhaul"
	req.ProjectID = &prj
	assert.NoError(t, req.Validate(today))

	// entries on the boundary are fine: zero hours, today's date
	req = validCreate(t)
	req.Hours = 0
	req.WorkDate = today
	assert.NoError(t, req.Validate(today))
}

func TestUpdateValidateChecksOnlyPresentFields(t *testing.T) {
	today, err := ParseDate("2025-11-21")
	require.NoError(t, err)

	assert.NoError(t, UpdateTimeLogRequest{}.Validate(today))

	bad := -1.0
	assert.True(t, dErrors.HasCode(
		UpdateTimeLogRequest{Hours: &bad}.Validate(today), dErrors.CodeBadRequest))

	future := today.AddDays(1)
	assert.True(t, dErrors.HasCode(
		UpdateTimeLogRequest{WorkDate: &future}.Validate(today), dErrors.CodeBadRequest))

	ok := 8.0
	assert.NoError(t, UpdateTimeLogRequest{Hours: &ok, WorkDate: &today}.Validate(today))
}

func TestApplyPatchPreservesIdentity(t *testing.T) {
	svc := "svc-oil-change"
	date, err := ParseDate("2025-11-20")
	require.NoError(t, err)

	log := TimeLog{
		ID:        "log-1",
		OwnerID:   "emp-001",
		ServiceID: &svc,
		Hours:     4,
		WorkDate:  date,
	}

	hours := 6.0
	desc := "brake inspection"
	log.ApplyPatch(UpdateTimeLogRequest{Hours: &hours, Description: &desc})

	assert.Equal(t, "log-1", log.ID)
	assert.Equal(t, "emp-001", log.OwnerID)
	assert.Equal(t, 6.0, log.Hours)
	assert.Equal(t, "brake inspection", log.Description)
	require.NotNil(t, log.ServiceID)
	assert.Equal(t, svc, *log.ServiceID)
}
