package snapshot

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyStore(t *testing.T) {
	repo := NewSnapshotRepository(kv.NewMemory())

	snap, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.Session)
	assert.Nil(t, snap.Employees)
	assert.Nil(t, snap.TimeEntries)
	assert.Nil(t, snap.Departments, "absent key stays nil so defaults apply")
	assert.Nil(t, snap.Positions)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewSnapshotRepository(store)

	in := "09:00"
	session := &auth.Session{Identity: auth.AdminIdentity(), IsAdmin: true}
	require.NoError(t, repo.SaveSession(ctx, session))
	require.NoError(t, repo.SaveEmployees(ctx, []employee.Employee{{ID: "1", Name: "John Doe", IsActive: true}}))
	require.NoError(t, repo.SaveTimeEntries(ctx, []timeentry.TimeEntry{{ID: "e1", EmployeeID: "1", Date: "2024-03-04", ClockIn: &in}}))
	require.NoError(t, repo.SaveDepartments(ctx, nil))
	require.NoError(t, repo.SavePositions(ctx, []string{"Developer"}))

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Session)
	assert.Equal(t, *session, *snap.Session)
	assert.Equal(t, "John Doe", snap.Employees[0].Name)
	assert.Equal(t, "09:00", *snap.TimeEntries[0].ClockIn)
	assert.Nil(t, snap.TimeEntries[0].ClockOut)
	assert.NotNil(t, snap.Departments)
	assert.Empty(t, snap.Departments)
	assert.Equal(t, []string{"Developer"}, snap.Positions)

	raw, ok, err := store.Get(ctx, KeyIsAdmin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", raw)
}

func TestSaveSession_NilClearsKeys(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := NewSnapshotRepository(store)

	require.NoError(t, repo.SaveSession(ctx, &auth.Session{Identity: auth.LegacyEmployeeIdentity()}))
	require.NoError(t, repo.SaveSession(ctx, nil))

	for _, key := range []string{KeyUser, KeyIsAdmin} {
		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestLoad_ReadsBrowserLayout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, KeyTimeEntries,
		`[{"id":"1","employeeId":"1","date":"2024-01-15","clockIn":"08:45","clockOut":null,"totalHours":0}]`))
	require.NoError(t, store.Set(ctx, KeyEmployees,
		`[{"id":"1","name":"John Doe","email":"john@company.com","department":"Engineering","position":"Developer","isActive":true,"createdAt":"2024-01-01"}]`))

	snap, err := NewSnapshotRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, timeentry.StateOpen, snap.TimeEntries[0].State())
	assert.True(t, snap.Employees[0].IsActive)
}

func TestLoad_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, KeyEmployees, `{not json`))

	_, err := NewSnapshotRepository(store).Load(ctx)
	assert.ErrorContains(t, err, KeyEmployees)
}
