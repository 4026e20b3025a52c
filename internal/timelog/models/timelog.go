package models

import "time"

// TimeLog is one recorded unit of work. OwnerID is fixed at creation and no
// update path may change it. A record may be attributed to a service, a
// project, or both; the schema deliberately keeps two independent optional
// associations rather than forcing exclusivity.
type TimeLog struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"employeeId"`
	ServiceID   *string   `json:"serviceId,omitempty"`
	ProjectID   *string   `json:"projectId,omitempty"`
	Hours       float64   `json:"hours"`
	WorkDate    Date      `json:"date"`
	Description string    `json:"description,omitempty"`
	WorkType    string    `json:"workType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (t *TimeLog) Clone() *TimeLog {
	if t == nil {
		return nil
	}
	out := *t
	if t.ServiceID != nil {
		v := *t.ServiceID
		out.ServiceID = &v
	}
	if t.ProjectID != nil {
		v := *t.ProjectID
		out.ProjectID = &v
	}
	return &out
}

// ApplyPatch overwrites each mutable field for which the patch carries a
// value; absent fields keep their stored value. OwnerID, ID, and CreatedAt
// are identity fields and are never touched.
func (t *TimeLog) ApplyPatch(p UpdateTimeLogRequest) {
	if p.ServiceID != nil {
		t.ServiceID = p.ServiceID
	}
	if p.ProjectID != nil {
		t.ProjectID = p.ProjectID
	}
	if p.Hours != nil {
		t.Hours = *p.Hours
	}
	if p.WorkDate != nil {
		t.WorkDate = *p.WorkDate
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.WorkType != nil {
		t.WorkType = *p.WorkType
	}
}
