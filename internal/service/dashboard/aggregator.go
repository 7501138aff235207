package dashboard

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

// The functions in this file are pure: they read the slices they are given
// and never retain or modify them.

// EntriesOn returns the entries dated date, in input order.
func EntriesOn(entries []timeentry.TimeEntry, date string) []timeentry.TimeEntry {
	out := make([]timeentry.TimeEntry, 0)
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// entriesByEmployee picks each employee's entry of record among entries for
// a single date, using the same last-stored rule as timeentry.IndexByKey.
func entriesByEmployee(entries []timeentry.TimeEntry) map[string]timeentry.TimeEntry {
	index := timeentry.IndexByKey(entries)
	out := make(map[string]timeentry.TimeEntry, len(index))
	for key, i := range index {
		out[key.EmployeeID] = entries[i]
	}
	return out
}

// DailyStatusOf classifies an employee's day from today's entry, if any.
func DailyStatusOf(entry timeentry.TimeEntry, ok bool) dashboard.DailyStatus {
	if !ok {
		return dashboard.DailyStatusNotStarted
	}
	switch entry.State() {
	case timeentry.StateOpen:
		return dashboard.DailyStatusClockedIn
	case timeentry.StateClosed:
		return dashboard.DailyStatusCompleted
	default:
		return dashboard.DailyStatusNotStarted
	}
}

// ClassifyAttendance flags a late arrival and an early leave under policy.
// Missing or malformed times are never flagged.
func ClassifyAttendance(entry timeentry.TimeEntry, policy dashboard.Policy) dashboard.AttendanceFlags {
	if policy.IsZero() {
		policy = dashboard.DefaultPolicy()
	}

	var flags dashboard.AttendanceFlags
	if entry.ClockIn != nil {
		if c, err := timeentry.ParseClock(*entry.ClockIn); err == nil {
			flags.Late = policy.IsLate(c)
		}
	}
	if entry.ClockOut != nil {
		if c, err := timeentry.ParseClock(*entry.ClockOut); err == nil {
			flags.EarlyLeave = policy.IsEarlyLeave(c)
		}
	}
	return flags
}

// FilterEmployees returns, in input order, the employees matching every
// constraining field of criteria.
func FilterEmployees(employees []employee.Employee, todayEntries []timeentry.TimeEntry, criteria dashboard.Criteria) []employee.Employee {
	byEmployee := entriesByEmployee(todayEntries)
	search := strings.ToLower(criteria.Search)

	out := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		if constrains(criteria.Department) && e.Department != criteria.Department {
			continue
		}
		if constrains(criteria.Position) && e.Position != criteria.Position {
			continue
		}

		switch criteria.Status {
		case dashboard.ActiveStatusActive:
			if !e.IsActive {
				continue
			}
		case dashboard.ActiveStatusInactive:
			if e.IsActive {
				continue
			}
		}

		entry, ok := byEmployee[e.ID]
		status := DailyStatusOf(entry, ok)
		switch criteria.ClockStatus {
		case dashboard.ClockStatusClockedIn:
			if status != dashboard.DailyStatusClockedIn {
				continue
			}
		case dashboard.ClockStatusCompleted:
			if status != dashboard.DailyStatusCompleted {
				continue
			}
		}

		switch criteria.Attendance {
		case dashboard.AttendanceLate:
			if !ok || !ClassifyAttendance(entry, criteria.Policy).Late {
				continue
			}
		case dashboard.AttendanceEarlyLeave:
			if !ok || !ClassifyAttendance(entry, criteria.Policy).EarlyLeave {
				continue
			}
		}

		out = append(out, e)
	}
	return out
}

func constrains(v string) bool {
	return v != "" && v != "all"
}

func matchesSearch(e employee.Employee, search string) bool {
	for _, field := range []string{e.Name, e.Email, e.ID, e.Position, e.Department} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// CountByDepartment counts employees per department.
func CountByDepartment(employees []employee.Employee) map[string]int {
	out := make(map[string]int)
	for _, e := range employees {
		out[e.Department]++
	}
	return out
}

// HoursByDepartment sums, per department, each employee's hours across all
// their entries, or their manual total when one is set.
func HoursByDepartment(employees []employee.Employee, entries []timeentry.TimeEntry) map[string]float64 {
	perEmployee := make(map[string][]float64)
	for _, te := range entries {
		perEmployee[te.EmployeeID] = append(perEmployee[te.EmployeeID], te.TotalHours)
	}

	perDepartment := make(map[string][]float64)
	for _, e := range employees {
		hours := timeentry.SumHours(perEmployee[e.ID]...)
		if e.ManualTotalHours != nil {
			hours = *e.ManualTotalHours
		}
		perDepartment[e.Department] = append(perDepartment[e.Department], hours)
	}

	out := make(map[string]float64, len(perDepartment))
	for dept, hours := range perDepartment {
		out[dept] = timeentry.SumHours(hours...)
	}
	return out
}

// AggregateByDepartment combines counts and hours, sorted by department.
func AggregateByDepartment(employees []employee.Employee, entries []timeentry.TimeEntry) []dashboard.DepartmentStat {
	counts := CountByDepartment(employees)
	hours := HoursByDepartment(employees, entries)

	out := make([]dashboard.DepartmentStat, 0, len(counts))
	for dept, n := range counts {
		out = append(out, dashboard.DepartmentStat{
			Department: dept,
			Employees:  n,
			TotalHours: hours[dept],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// BuildDailyStatus returns one row per employee for today. Hours come from
// the manual total when set, otherwise from today's entry.
func BuildDailyStatus(employees []employee.Employee, todayEntries []timeentry.TimeEntry, policy dashboard.Policy) []dashboard.EmployeeDailyStatus {
	byEmployee := entriesByEmployee(todayEntries)

	out := make([]dashboard.EmployeeDailyStatus, 0, len(employees))
	for _, e := range employees {
		entry, ok := byEmployee[e.ID]
		row := dashboard.EmployeeDailyStatus{
			EmployeeID: e.ID,
			Name:       e.Name,
			Department: e.Department,
			Position:   e.Position,
			IsActive:   e.IsActive,
			Status:     DailyStatusOf(entry, ok),
		}
		if ok {
			flags := ClassifyAttendance(entry, policy)
			row.ClockIn = entry.ClockIn
			row.ClockOut = entry.ClockOut
			row.TotalHours = entry.TotalHours
			row.Late = flags.Late
			row.EarlyLeave = flags.EarlyLeave
		}
		if e.ManualTotalHours != nil {
			row.TotalHours = *e.ManualTotalHours
		}
		out = append(out, row)
	}
	return out
}

// LateArrivals lists entries clocked in after the late threshold, latest
// first.
func LateArrivals(employees []employee.Employee, todayEntries []timeentry.TimeEntry, policy dashboard.Policy) []dashboard.AttendanceIssue {
	return issues(employees, todayEntries, func(e timeentry.TimeEntry) (string, bool) {
		if e.ClockIn == nil || !ClassifyAttendance(e, policy).Late {
			return "", false
		}
		return *e.ClockIn, true
	})
}

// EarlyLeaves lists entries clocked out before the early leave threshold,
// latest first.
func EarlyLeaves(employees []employee.Employee, todayEntries []timeentry.TimeEntry, policy dashboard.Policy) []dashboard.AttendanceIssue {
	return issues(employees, todayEntries, func(e timeentry.TimeEntry) (string, bool) {
		if e.ClockOut == nil || !ClassifyAttendance(e, policy).EarlyLeave {
			return "", false
		}
		return *e.ClockOut, true
	})
}

func issues(employees []employee.Employee, entries []timeentry.TimeEntry, pick func(timeentry.TimeEntry) (string, bool)) []dashboard.AttendanceIssue {
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	record := timeentry.IndexByKey(entries)

	out := make([]dashboard.AttendanceIssue, 0)
	for i, te := range entries {
		if record[te.Key()] != i {
			continue
		}
		at, ok := pick(te)
		if !ok {
			continue
		}
		issue := dashboard.AttendanceIssue{EmployeeID: te.EmployeeID, Name: "Unknown", Time: at}
		if e, found := byID[te.EmployeeID]; found {
			issue.Name = e.Name
			issue.Department = e.Department
		}
		out = append(out, issue)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time > out[j].Time })
	return out
}

// CountToday summarises employees against today's entries.
func CountToday(employees []employee.Employee, todayEntries []timeentry.TimeEntry, policy dashboard.Policy) dashboard.Counts {
	byEmployee := entriesByEmployee(todayEntries)

	c := dashboard.Counts{TotalEmployees: len(employees)}
	for _, e := range employees {
		if e.IsActive {
			c.ActiveEmployees++
		}
		entry, ok := byEmployee[e.ID]
		switch DailyStatusOf(entry, ok) {
		case dashboard.DailyStatusClockedIn:
			c.ClockedIn++
		case dashboard.DailyStatusCompleted:
			c.Completed++
		default:
			c.NotStarted++
		}
		if ok {
			flags := ClassifyAttendance(entry, policy)
			if flags.Late {
				c.LateArrivals++
			}
			if flags.EarlyLeave {
				c.EarlyLeaves++
			}
		}
	}
	return c
}
