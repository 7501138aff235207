package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/timeentry"
	"github.com/cmlabs-hris/timeclock-go/internal/fixtures"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
	"github.com/cmlabs-hris/timeclock-go/internal/repository/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stubClock) Set(hhmm string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := time.Parse(timeentry.ClockLayout, hhmm)
	if err != nil {
		panic(err)
	}
	c.now = time.Date(c.now.Year(), c.now.Month(), c.now.Day(), t.Hour(), t.Minute(), 0, 0, c.now.Location())
}

const testDate = "2024-03-04"

func newClock() *stubClock {
	return &stubClock{now: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
}

// failingRepo fails the selected saves and delegates everything else.
type failingRepo struct {
	directory.Repository
	failEmployees   bool
	failTimeEntries bool
	failDepartments bool
	failSession     bool
}

var errDisk = errors.New("disk full")

func (r *failingRepo) SaveEmployees(ctx context.Context, e []employee.Employee) error {
	if r.failEmployees {
		return errDisk
	}
	return r.Repository.SaveEmployees(ctx, e)
}

func (r *failingRepo) SaveTimeEntries(ctx context.Context, e []timeentry.TimeEntry) error {
	if r.failTimeEntries {
		return errDisk
	}
	return r.Repository.SaveTimeEntries(ctx, e)
}

func (r *failingRepo) SaveDepartments(ctx context.Context, d []string) error {
	if r.failDepartments {
		return errDisk
	}
	return r.Repository.SaveDepartments(ctx, d)
}

func (r *failingRepo) SaveSession(ctx context.Context, s *auth.Session) error {
	if r.failSession {
		return errDisk
	}
	return r.Repository.SaveSession(ctx, s)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type testEnv struct {
	store *Store
	clock *stubClock
	kv    *kv.Memory
	repo  *failingRepo
	pub   *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := kv.NewMemory()
	repo := &failingRepo{Repository: snapshot.NewSnapshotRepository(mem)}
	clock := newClock()
	pub := &recordingPublisher{}

	s, err := New(context.Background(), repo,
		WithClock(clock),
		WithHashCost(bcrypt.MinCost),
		WithPublisher(pub),
	)
	require.NoError(t, err)

	return &testEnv{store: s, clock: clock, kv: mem, repo: repo, pub: pub}
}

// reload builds a second store over the same substrate.
func (e *testEnv) reload(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), snapshot.NewSnapshotRepository(e.kv), WithClock(e.clock), WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)
	return s
}

func (e *testEnv) addEmployee(t *testing.T, name, email, department, position, password string) employee.Employee {
	t.Helper()
	emp, err := e.store.AddEmployee(context.Background(), employee.CreateEmployeeRequest{
		Name: name, Email: email, Department: department, Position: position, Password: password,
	})
	require.NoError(t, err)
	return emp
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func TestNew_AppliesDefaultSeeds(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, fixtures.DefaultDepartments(), env.store.Departments())
	assert.Equal(t, fixtures.DefaultPositions(), env.store.Positions())
	assert.Empty(t, env.store.Employees())
	assert.Empty(t, env.store.AllTimeEntries())

	_, ok := env.store.Session()
	assert.False(t, ok)
}

func TestNew_KeepsPersistedEmptyLists(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, snapshot.KeyDepartments, `[]`))

	s, err := New(ctx, snapshot.NewSnapshotRepository(mem))
	require.NoError(t, err)
	assert.Empty(t, s.Departments())
	assert.Equal(t, fixtures.DefaultPositions(), s.Positions())
}

func TestLogin_AdminSeedsEmptyDirectory(t *testing.T) {
	env := newTestEnv(t)

	ok, err := env.store.Login(context.Background(), auth.AdminEmail, auth.AdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	session, ok := env.store.Session()
	require.True(t, ok)
	assert.True(t, session.IsAdmin)
	assert.Equal(t, auth.AdminIdentity(), session.Identity)

	assert.Len(t, env.store.Employees(), len(fixtures.DemoEmployees()))
	entries := env.store.AllTimeEntries()
	require.Len(t, entries, len(fixtures.DemoTimeEntries(testDate)))
	for _, e := range entries {
		assert.Equal(t, testDate, e.Date)
	}
	assert.Contains(t, env.pub.events, EventSeeded)

	reloaded := env.reload(t)
	assert.Len(t, reloaded.Employees(), len(fixtures.DemoEmployees()))
	persisted, ok := reloaded.Session()
	require.True(t, ok)
	assert.True(t, persisted.IsAdmin)
}

func TestLogin_AdminDoesNotReseed(t *testing.T) {
	env := newTestEnv(t)
	env.addEmployee(t, "Only One", "only@company.com", "HR", "Manager", "")

	ok, err := env.store.Login(context.Background(), auth.AdminEmail, auth.AdminPassword)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Len(t, env.store.Employees(), 1)
	assert.Empty(t, env.store.AllTimeEntries())
}

func TestLogin_SeededEmployeesUseDefaultPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.Login(ctx, auth.AdminEmail, auth.AdminPassword)
	require.NoError(t, err)

	demo := fixtures.DemoEmployees()[1]
	ok, err := env.store.Login(ctx, demo.Email, employee.DefaultPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	session, _ := env.store.Session()
	assert.Equal(t, demo.ID, session.Identity.ID)
	assert.False(t, session.IsAdmin)
}

func TestLogin_LegacyEmployee(t *testing.T) {
	env := newTestEnv(t)

	ok, err := env.store.Login(context.Background(), auth.LegacyEmployeeEmail, auth.LegacyEmployeePassword)
	require.NoError(t, err)
	require.True(t, ok)

	session, _ := env.store.Session()
	assert.False(t, session.IsAdmin)
	assert.Equal(t, auth.LegacyEmployeeIdentity(), session.Identity)
	assert.Empty(t, env.store.Employees(), "legacy login never seeds")
}

func TestLogin_Employee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.addEmployee(t, "Jane Smith", "jane@company.com", "Marketing", "Manager", "s3cret!")

	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"correct credentials", "jane@company.com", "s3cret!", true},
		{"wrong password", "jane@company.com", "password123", false},
		{"unknown email", "nobody@company.com", "s3cret!", false},
		{"email match is exact", "JANE@company.com", "s3cret!", false},
		{"admin email wrong password", auth.AdminEmail, "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, env.store.Logout(ctx))

			ok, err := env.store.Login(ctx, tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			session, has := env.store.Session()
			assert.Equal(t, tt.want, has)
			if tt.want {
				assert.Equal(t, emp.Identity(), session.Identity)
			}
		})
	}
}

func TestLogin_InactiveEmployeeFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.AddEmployee(ctx, employee.CreateEmployeeRequest{
		Name: "Gone", Email: "gone@company.com", Department: "Sales", Position: "Analyst",
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	ok, err := env.store.Login(ctx, "gone@company.com", employee.DefaultPassword)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_PlainTextPasswordFromBrowserData(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, snapshot.KeyEmployees,
		`[{"id":"9","name":"Old Record","email":"old@company.com","department":"HR","position":"Manager","isActive":true,"createdAt":"2024-01-01","password":"password123"}]`))

	s, err := New(ctx, snapshot.NewSnapshotRepository(mem))
	require.NoError(t, err)

	ok, err := s.Login(ctx, "old@company.com", "password123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthenticate_LeavesDeviceSessionAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	session, err := env.store.Authenticate(ctx, auth.AdminEmail, auth.AdminPassword)
	require.NoError(t, err)
	assert.True(t, session.IsAdmin)

	_, ok := env.store.Session()
	assert.False(t, ok)
	assert.NotEmpty(t, env.store.Employees(), "admin authentication still seeds")

	_, err = env.store.Authenticate(ctx, "x@company.com", "y")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_SessionPersistFailure(t *testing.T) {
	env := newTestEnv(t)
	env.repo.failSession = true

	ok, err := env.store.Login(context.Background(), auth.LegacyEmployeeEmail, auth.LegacyEmployeePassword)
	assert.ErrorIs(t, err, errDisk)
	assert.False(t, ok)

	_, has := env.store.Session()
	assert.False(t, has)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.Login(ctx, auth.LegacyEmployeeEmail, auth.LegacyEmployeePassword)
	require.NoError(t, err)
	require.NoError(t, env.store.Logout(ctx))

	_, ok := env.store.Session()
	assert.False(t, ok)

	_, ok = env.reload(t).Session()
	assert.False(t, ok)
}
