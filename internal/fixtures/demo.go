package fixtures

import (
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

func strPtr(s string) *string { return &s }

// DefaultDepartments is used when no department list has been persisted.
func DefaultDepartments() []string {
	return []string{"Engineering", "Marketing", "Sales", "HR"}
}

// DefaultPositions is used when no position list has been persisted.
func DefaultPositions() []string {
	return []string{"Developer", "Manager", "Designer", "Analyst"}
}

// DemoEmployees is seeded on the first administrator login against an empty
// directory. Password is left empty; the caller stores a hash of
// employee.DefaultPassword.
func DemoEmployees() []employee.Employee {
	return []employee.Employee{
		{
			ID:         "1",
			Name:       "John Doe",
			Email:      "john.doe@company.com",
			Department: "Engineering",
			Position:   "Developer",
			IsActive:   true,
			CreatedAt:  "2024-01-01",
		},
		{
			ID:         "2",
			Name:       "Jane Smith",
			Email:      "jane.smith@company.com",
			Department: "Marketing",
			Position:   "Manager",
			IsActive:   true,
			CreatedAt:  "2024-01-02",
		},
		{
			ID:         "3",
			Name:       "Mike Johnson",
			Email:      "mike.johnson@company.com",
			Department: "Sales",
			Position:   "Analyst",
			IsActive:   true,
			CreatedAt:  "2024-01-03",
		},
		{
			ID:         "4",
			Name:       "Sarah Wilson",
			Email:      "sarah.wilson@company.com",
			Department: "HR",
			Position:   "Manager",
			IsActive:   true,
			CreatedAt:  "2024-01-04",
		},
	}
}

// DemoTimeEntries returns one closed entry per demo employee on date.
func DemoTimeEntries(date string) []timeentry.TimeEntry {
	entry := func(id, employeeID, in, out string, hours float64) timeentry.TimeEntry {
		return timeentry.TimeEntry{
			ID:         id,
			EmployeeID: employeeID,
			Date:       date,
			ClockIn:    strPtr(in),
			ClockOut:   strPtr(out),
			TotalHours: hours,
		}
	}

	return []timeentry.TimeEntry{
		entry("demo-1", "1", "08:45", "17:30", 8.75),
		entry("demo-2", "2", "09:15", "17:45", 8.5),
		entry("demo-3", "3", "08:30", "16:30", 8.0),
		entry("demo-4", "4", "09:05", "16:45", 7.67),
	}
}
