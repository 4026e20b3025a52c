package models

// SummaryResponse aggregates an owner's entries over a resolved period range.
// Both range bounds are inclusive.
type SummaryResponse struct {
	EmployeeID string             `json:"employeeId"`
	Period     string             `json:"period"`
	StartDate  Date               `json:"startDate"`
	EndDate    Date               `json:"endDate"`
	TotalHours float64            `json:"totalHours"`
	Count      int                `json:"count"`
	ByService  map[string]float64 `json:"byService"`
	ByProject  map[string]float64 `json:"byProject"`
}

// StatisticsResponse is the all-time overview for one owner. FirstLogDate and
// LastLogDate are absent when the owner has no entries.
type StatisticsResponse struct {
	EmployeeID         string             `json:"employeeId"`
	TotalLogs          int                `json:"totalLogs"`
	TotalHours         float64            `json:"totalHours"`
	AverageHoursPerLog float64            `json:"averageHoursPerLog"`
	LogsByWorkType     map[string]int     `json:"logsByWorkType"`
	HoursByService     map[string]float64 `json:"hoursByService"`
	HoursByProject     map[string]float64 `json:"hoursByProject"`
	FirstLogDate       *Date              `json:"firstLogDate,omitempty"`
	LastLogDate        *Date              `json:"lastLogDate,omitempty"`
}

// TotalHoursResponse reports the lifetime hour sum for one owner.
type TotalHoursResponse struct {
	EmployeeID string  `json:"employeeId"`
	TotalHours float64 `json:"totalHours"`
}
