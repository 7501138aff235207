package store

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
	"github.com/cmlabs-hris/timeclock-go/internal/repository/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginLegacy(t *testing.T, env *testEnv) string {
	t.Helper()
	ok, err := env.store.Login(context.Background(), auth.LegacyEmployeeEmail, auth.LegacyEmployeePassword)
	require.NoError(t, err)
	require.True(t, ok)
	return auth.LegacyEmployeeIdentity().ID
}

func TestCurrentEntry_NoEntryToday(t *testing.T) {
	env := newTestEnv(t)
	loginLegacy(t, env)

	_, ok := env.store.CurrentEntry()
	assert.False(t, ok)
}

func TestCurrentEntry_NoSession(t *testing.T) {
	env := newTestEnv(t)
	_, ok := env.store.CurrentEntry()
	assert.False(t, ok)
}

func TestClockIn_OpensEntry(t *testing.T) {
	env := newTestEnv(t)
	id := loginLegacy(t, env)
	env.clock.Set("08:45")

	entry, applied, err := env.store.ClockIn(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, id, entry.EmployeeID)
	assert.Equal(t, testDate, entry.Date)
	require.NotNil(t, entry.ClockIn)
	assert.Equal(t, "08:45", *entry.ClockIn)
	assert.Nil(t, entry.ClockOut)
	assert.Zero(t, entry.TotalHours)
	assert.NotEmpty(t, entry.ID)

	current, ok := env.store.CurrentEntry()
	require.True(t, ok)
	assert.Equal(t, entry, current)
	assert.Contains(t, env.pub.events, EventClockedIn)
}

func TestClockIn_TwiceLeavesOneOpenEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	loginLegacy(t, env)

	first, applied, err := env.store.ClockIn(ctx)
	require.NoError(t, err)
	require.True(t, applied)

	env.clock.Set("09:30")
	second, applied, err := env.store.ClockIn(ctx)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, first, second)

	entries := env.store.AllTimeEntries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsOpen())
	assert.Equal(t, "09:00", *entries[0].ClockIn)
}

func TestClockOut_ComputesHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	loginLegacy(t, env)

	env.clock.Set("08:45")
	_, _, err := env.store.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.Set("17:30")
	entry, applied, err := env.store.ClockOut(ctx)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "17:30", *entry.ClockOut)
	assert.Equal(t, 8.75, entry.TotalHours)
	assert.True(t, entry.IsClosed())

	persisted := env.reload(t).AllTimeEntries()
	require.Len(t, persisted, 1)
	assert.Equal(t, 8.75, persisted[0].TotalHours)
}

func TestClockOut_NoOpenEntryIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := loginLegacy(t, env)

	_, applied, err := env.store.ClockOut(ctx)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, env.store.AllTimeEntries())

	env.clock.Set("08:00")
	_, _, err = env.store.ClockInFor(ctx, id)
	require.NoError(t, err)
	env.clock.Set("16:00")
	_, _, err = env.store.ClockOutFor(ctx, id)
	require.NoError(t, err)

	before := env.store.AllTimeEntries()
	env.clock.Set("17:00")
	_, applied, err = env.store.ClockOut(ctx)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, before, env.store.AllTimeEntries())
}

func TestClockIn_AfterCloseDoesNotReopen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	loginLegacy(t, env)

	_, _, err := env.store.ClockIn(ctx)
	require.NoError(t, err)
	env.clock.Set("12:00")
	closed, _, err := env.store.ClockOut(ctx)
	require.NoError(t, err)

	env.clock.Set("13:00")
	got, applied, err := env.store.ClockIn(ctx)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, closed, got)
	assert.Len(t, env.store.AllTimeEntries(), 1)
}

func TestClockIn_NextDayCreatesNewEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := loginLegacy(t, env)

	_, _, err := env.store.ClockIn(ctx)
	require.NoError(t, err)

	env.clock.now = env.clock.now.Add(24 * time.Hour)
	_, ok := env.store.CurrentEntry()
	assert.False(t, ok, "yesterday's open entry is not today's")

	entry, applied, err := env.store.ClockIn(ctx)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "2024-03-05", entry.Date)
	assert.Len(t, env.store.EmployeeTimeEntries(id), 2)
}

func TestClock_NoSessionIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, applied, err := env.store.ClockIn(ctx)
	require.NoError(t, err)
	assert.False(t, applied)

	_, applied, err = env.store.ClockOut(ctx)
	require.NoError(t, err)
	assert.False(t, applied)

	assert.Empty(t, env.store.AllTimeEntries())
}

func TestClockIn_UsesConfiguredLocation(t *testing.T) {
	ctx := context.Background()
	clock := &stubClock{now: time.Date(2024, 3, 4, 20, 30, 0, 0, time.UTC)}
	s, err := New(ctx, snapshot.NewSnapshotRepository(kv.NewMemory()),
		WithClock(clock), WithLocation(time.FixedZone("UTC+7", 7*3600)))
	require.NoError(t, err)

	entry, applied, err := s.ClockInFor(ctx, "5")
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, "2024-03-05", entry.Date)
	assert.Equal(t, "03:30", *entry.ClockIn)
	assert.Equal(t, "2024-03-05", s.Today())
}

func TestClockIn_PersistFailureLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := loginLegacy(t, env)

	env.repo.failTimeEntries = true
	_, applied, err := env.store.ClockInFor(ctx, id)
	assert.ErrorIs(t, err, errDisk)
	assert.False(t, applied)
	assert.Empty(t, env.store.AllTimeEntries())

	env.repo.failTimeEntries = false
	_, applied, err = env.store.ClockInFor(ctx, id)
	require.NoError(t, err)
	require.True(t, applied)

	env.repo.failTimeEntries = true
	env.clock.Set("17:00")
	_, _, err = env.store.ClockOutFor(ctx, id)
	assert.ErrorIs(t, err, errDisk)

	current, ok := env.store.CurrentEntryFor(id)
	require.True(t, ok)
	assert.True(t, current.IsOpen())
}

func TestClockIn_FillsEmptyLegacyEntry(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, snapshot.KeyTimeEntries,
		`[{"id":"x","employeeId":"2","date":"2024-03-04","clockIn":null,"clockOut":null,"totalHours":0}]`))

	s, err := New(ctx, snapshot.NewSnapshotRepository(mem), WithClock(newClock()))
	require.NoError(t, err)

	entry, applied, err := s.ClockInFor(ctx, "2")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "x", entry.ID)
	assert.Equal(t, timeentry.StateOpen, entry.State())
	assert.Len(t, s.AllTimeEntries(), 1)
}

func TestClockOut_LatestDuplicateIsUsed(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, snapshot.KeyTimeEntries, `[
		{"id":"a","employeeId":"2","date":"2024-03-04","clockIn":"07:00","clockOut":"08:00","totalHours":1},
		{"id":"b","employeeId":"2","date":"2024-03-04","clockIn":"08:30","clockOut":null,"totalHours":0}
	]`))

	clock := newClock()
	s, err := New(ctx, snapshot.NewSnapshotRepository(mem), WithClock(clock))
	require.NoError(t, err)

	clock.Set("10:00")
	entry, applied, err := s.ClockOutFor(ctx, "2")
	require.NoError(t, err)
	require.True(t, applied)
	assert.Equal(t, "b", entry.ID)
	assert.Equal(t, 1.5, entry.TotalHours)

	entries := s.AllTimeEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, 1.0, entries[0].TotalHours)
}
