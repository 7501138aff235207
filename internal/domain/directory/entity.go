package directory

import (
	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
)

// Snapshot is the whole persisted state. A nil slice means the key has never
// been written; an empty non-nil slice means it was written empty.
type Snapshot struct {
	Session     *auth.Session
	Employees   []employee.Employee
	TimeEntries []timeentry.TimeEntry
	Departments []string
	Positions   []string
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{}
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	if s.Employees != nil {
		out.Employees = make([]employee.Employee, len(s.Employees))
		for i, e := range s.Employees {
			out.Employees[i] = e.Clone()
		}
	}
	if s.TimeEntries != nil {
		out.TimeEntries = make([]timeentry.TimeEntry, len(s.TimeEntries))
		for i, e := range s.TimeEntries {
			out.TimeEntries[i] = e.Clone()
		}
	}
	if s.Departments != nil {
		out.Departments = append([]string{}, s.Departments...)
	}
	if s.Positions != nil {
		out.Positions = append([]string{}, s.Positions...)
	}
	return out
}
