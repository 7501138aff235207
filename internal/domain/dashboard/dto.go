package dashboard

import (
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
)

// ClockStatus filters employees by today's entry.
type ClockStatus string

const (
	ClockStatusAll       ClockStatus = "all"
	ClockStatusClockedIn ClockStatus = "clocked-in"
	ClockStatusCompleted ClockStatus = "completed"
)

// DailyStatus is the label shown for an employee's day.
type DailyStatus string

const (
	DailyStatusNotStarted DailyStatus = "Not Started"
	DailyStatusClockedIn  DailyStatus = "Clocked In"
	DailyStatusCompleted  DailyStatus = "Completed"
)

const (
	ActiveStatusAll      = "all"
	ActiveStatusActive   = "active"
	ActiveStatusInactive = "inactive"

	AttendanceAll        = "all"
	AttendanceLate       = "late"
	AttendanceEarlyLeave = "early-leave"
)

// Criteria narrows an employee list. Empty or "all" values do not constrain.
type Criteria struct {
	Search      string
	Department  string
	Position    string
	ClockStatus ClockStatus
	Status      string
	Attendance  string
	Policy      Policy
}

// AttendanceFlags classifies one entry against a policy.
type AttendanceFlags struct {
	Late       bool `json:"late"`
	EarlyLeave bool `json:"early_leave"`
}

// EmployeeDailyStatus is one row of the per-employee daily table.
type EmployeeDailyStatus struct {
	EmployeeID string      `json:"employee_id"`
	Name       string      `json:"name"`
	Department string      `json:"department"`
	Position   string      `json:"position"`
	IsActive   bool        `json:"is_active"`
	ClockIn    *string     `json:"clock_in"`
	ClockOut   *string     `json:"clock_out"`
	TotalHours float64     `json:"total_hours"`
	Status     DailyStatus `json:"status"`
	Late       bool        `json:"late"`
	EarlyLeave bool        `json:"early_leave"`
}

type DepartmentStat struct {
	Department string  `json:"department"`
	Employees  int     `json:"employees"`
	TotalHours float64 `json:"total_hours"`
}

// AttendanceIssue is a late arrival or early leave on the dashboard date.
type AttendanceIssue struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Time       string `json:"time"`
}

type Counts struct {
	TotalEmployees  int `json:"total_employees"`
	ActiveEmployees int `json:"active_employees"`
	ClockedIn       int `json:"clocked_in"`
	Completed       int `json:"completed"`
	NotStarted      int `json:"not_started"`
	LateArrivals    int `json:"late_arrivals"`
	EarlyLeaves     int `json:"early_leaves"`
}

type DashboardFilter struct {
	Search      string
	Department  string
	Position    string
	ClockStatus string
	Status      string
	Attendance  string
}

func (f *DashboardFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.ClockStatus != "" && !validator.IsInSlice(f.ClockStatus, []string{
		string(ClockStatusAll), string(ClockStatusClockedIn), string(ClockStatusCompleted),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_status",
			Message: "clock_status must be one of all, clocked-in, completed",
		})
	}
	if f.Status != "" && !validator.IsInSlice(f.Status, []string{ActiveStatusAll, ActiveStatusActive, ActiveStatusInactive}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of all, active, inactive",
		})
	}
	if f.Attendance != "" && !validator.IsInSlice(f.Attendance, []string{AttendanceAll, AttendanceLate, AttendanceEarlyLeave}) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance",
			Message: "attendance must be one of all, late, early-leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Criteria converts the filter into aggregation criteria under policy.
func (f DashboardFilter) Criteria(policy Policy) Criteria {
	return Criteria{
		Search:      f.Search,
		Department:  f.Department,
		Position:    f.Position,
		ClockStatus: ClockStatus(f.ClockStatus),
		Status:      f.Status,
		Attendance:  f.Attendance,
		Policy:      policy,
	}
}

// DashboardResponse is the administrator overview for one date.
type DashboardResponse struct {
	Date         string                        `json:"date"`
	Counts       Counts                        `json:"counts"`
	Departments  []DepartmentStat              `json:"departments"`
	DailyStatus  []EmployeeDailyStatus         `json:"daily_status"`
	LateArrivals []AttendanceIssue             `json:"late_arrivals"`
	EarlyLeaves  []AttendanceIssue             `json:"early_leaves"`
	TodayEntries []timeentry.TimeEntryResponse `json:"today_entries"`
}
