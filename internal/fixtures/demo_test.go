package fixtures

import (
	"testing"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoEmployees_UseDefaultDirectory(t *testing.T) {
	departments := DefaultDepartments()
	positions := DefaultPositions()

	for _, e := range DemoEmployees() {
		assert.Contains(t, departments, e.Department, e.Name)
		assert.Contains(t, positions, e.Position, e.Name)
		assert.True(t, e.IsActive)
	}
}

func TestDemoTimeEntries_HoursMatchClockTimes(t *testing.T) {
	ids := map[string]bool{}
	for _, e := range DemoEmployees() {
		ids[e.ID] = true
	}

	for _, e := range DemoTimeEntries("2024-03-04") {
		require.True(t, e.IsClosed())
		assert.True(t, ids[e.EmployeeID], "entry %s references unknown employee", e.ID)
		assert.Equal(t, "2024-03-04", e.Date)

		hours, err := timeentry.ElapsedHours(e.Date, *e.ClockIn, *e.ClockOut)
		require.NoError(t, err)
		assert.Equal(t, hours, e.TotalHours)
	}
}
