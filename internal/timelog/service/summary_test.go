package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"worklog/internal/timelog/models"
	"worklog/internal/timelog/service"
	"worklog/internal/timelog/store/memory"
	dErrors "worklog/pkg/domain-errors"
)

type SummarySuite struct {
	suite.Suite

	store *memory.Store
	svc   *service.Service
	ctx   context.Context
}

func (s *SummarySuite) SetupTest() {
	s.store = memory.New()
	svc, err := service.New(s.store)
	s.Require().NoError(err)
	s.svc = svc
	s.ctx = context.Background()
}

func (s *SummarySuite) log(ownerID string, req models.CreateTimeLogRequest) {
	_, err := s.svc.Create(s.ctx, ownerID, req)
	s.Require().NoError(err)
}

func TestSummarySuite(t *testing.T) {
	suite.Run(t, new(SummarySuite))
}

func (s *SummarySuite) TestWeeklySummaryResolvesMondayWeek() {
	// Friday 2025-11-21 falls in the week 2025-11-17 .. 2025-11-23.
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     8,
		WorkDate:  mustDate(s.T(), "2025-11-17"),
	})
	s.log("emp-001", models.CreateTimeLogRequest{
		ProjectID: strPtr("prj-fleet-overhaul"),
		Hours:     7.5,
		WorkDate:  mustDate(s.T(), "2025-11-21"),
	})
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     4,
		WorkDate:  mustDate(s.T(), "2025-11-24"), // following Monday, out of range
	})
	s.log("emp-002", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     2,
		WorkDate:  mustDate(s.T(), "2025-11-19"),
	})

	resp, err := s.svc.Summarize(s.ctx, "emp-001", "weekly", mustDate(s.T(), "2025-11-21"))
	s.Require().NoError(err)

	s.Equal("emp-001", resp.EmployeeID)
	s.Equal("weekly", resp.Period)
	s.Equal("2025-11-17", resp.StartDate.String())
	s.Equal("2025-11-23", resp.EndDate.String())
	s.Equal(15.5, resp.TotalHours)
	s.Equal(2, resp.Count)
	s.Equal(map[string]float64{"svc-oil-change": 8}, resp.ByService)
	s.Equal(map[string]float64{"prj-fleet-overhaul": 7.5}, resp.ByProject)
}

func (s *SummarySuite) TestDailySummaryCoversSingleDay() {
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     3,
		WorkDate:  mustDate(s.T(), "2025-11-21"),
	})
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     5,
		WorkDate:  mustDate(s.T(), "2025-11-20"),
	})

	resp, err := s.svc.Summarize(s.ctx, "emp-001", "DAILY", mustDate(s.T(), "2025-11-21"))
	s.Require().NoError(err)
	s.Equal("2025-11-21", resp.StartDate.String())
	s.Equal("2025-11-21", resp.EndDate.String())
	s.Equal(3.0, resp.TotalHours)
	s.Equal(1, resp.Count)
}

func (s *SummarySuite) TestMonthlySummarySpansCalendarMonth() {
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     6,
		WorkDate:  mustDate(s.T(), "2025-11-01"),
	})
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     2,
		WorkDate:  mustDate(s.T(), "2025-10-31"),
	})

	resp, err := s.svc.Summarize(s.ctx, "emp-001", "monthly", mustDate(s.T(), "2025-11-21"))
	s.Require().NoError(err)
	s.Equal("2025-11-01", resp.StartDate.String())
	s.Equal("2025-11-30", resp.EndDate.String())
	s.Equal(6.0, resp.TotalHours)
}

func (s *SummarySuite) TestUnknownPeriodIsRejected() {
	_, err := s.svc.Summarize(s.ctx, "emp-001", "yearly", mustDate(s.T(), "2025-11-21"))
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *SummarySuite) TestSummaryForEmptyRangeIsZero() {
	resp, err := s.svc.Summarize(s.ctx, "emp-001", "daily", mustDate(s.T(), "2025-11-21"))
	s.Require().NoError(err)
	s.Zero(resp.TotalHours)
	s.Zero(resp.Count)
	s.NotNil(resp.ByService)
	s.Empty(resp.ByService)
}

func (s *SummarySuite) TestStatisticsForActiveOwner() {
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     8,
		WorkDate:  mustDate(s.T(), "2025-11-17"),
		WorkType:  "REPAIR",
	})
	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-brake-repair"),
		ProjectID: strPtr("prj-fleet-overhaul"),
		Hours:     5,
		WorkDate:  mustDate(s.T(), "2025-11-21"),
		WorkType:  "REPAIR",
	})
	s.log("emp-001", models.CreateTimeLogRequest{
		ProjectID: strPtr("prj-fleet-overhaul"),
		Hours:     4,
		WorkDate:  mustDate(s.T(), "2025-11-10"),
		WorkType:  "INSPECTION",
	})

	resp, err := s.svc.Statistics(s.ctx, "emp-001")
	s.Require().NoError(err)

	s.Equal(3, resp.TotalLogs)
	s.Equal(17.0, resp.TotalHours)
	s.Equal(5.67, resp.AverageHoursPerLog)
	s.Equal(map[string]int{"REPAIR": 2, "INSPECTION": 1}, resp.LogsByWorkType)
	s.Equal(map[string]float64{"svc-oil-change": 8, "svc-brake-repair": 5}, resp.HoursByService)
	s.Equal(map[string]float64{"prj-fleet-overhaul": 9}, resp.HoursByProject)
	s.Require().NotNil(resp.FirstLogDate)
	s.Equal("2025-11-10", resp.FirstLogDate.String())
	s.Require().NotNil(resp.LastLogDate)
	s.Equal("2025-11-21", resp.LastLogDate.String())
}

func (s *SummarySuite) TestStatisticsForUnknownOwnerAreZero() {
	resp, err := s.svc.Statistics(s.ctx, "emp-nobody")
	s.Require().NoError(err)

	s.Zero(resp.TotalLogs)
	s.Zero(resp.TotalHours)
	s.Zero(resp.AverageHoursPerLog)
	s.Nil(resp.FirstLogDate)
	s.Nil(resp.LastLogDate)
}

func (s *SummarySuite) TestTotalHoursDistinguishesNothingFromZero() {
	resp, err := s.svc.TotalHours(s.ctx, "emp-nobody")
	s.Require().NoError(err)
	s.Equal(0.0, resp.TotalHours)

	s.log("emp-001", models.CreateTimeLogRequest{
		ServiceID: strPtr("svc-oil-change"),
		Hours:     0,
		WorkDate:  mustDate(s.T(), "2025-11-21"),
	})
	resp, err = s.svc.TotalHours(s.ctx, "emp-001")
	s.Require().NoError(err)
	s.Equal(0.0, resp.TotalHours)
}
