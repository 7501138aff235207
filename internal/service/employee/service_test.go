package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-go/internal/repository/snapshot"
	"github.com/cmlabs-hris/timeclock-go/internal/service/store"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var tokens = jwt.NewJWTService("employee-test-secret", time.Hour)

func sessionContext(t *testing.T, session auth.Session) context.Context {
	t.Helper()
	token, _, err := tokens.GenerateAccessToken(session)
	require.NoError(t, err)
	parsed, err := tokens.JWTAuth().Decode(token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), parsed, nil)
}

type testEnv struct {
	svc   employee.EmployeeService
	store *store.Store
	admin context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s, err := store.New(context.Background(), snapshot.NewSnapshotRepository(kv.NewMemory()),
		store.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)

	return &testEnv{
		svc:   NewEmployeeService(s),
		store: s,
		admin: sessionContext(t, auth.Session{Identity: auth.AdminIdentity(), IsAdmin: true}),
	}
}

func (e *testEnv) create(t *testing.T, name, email, department, position string) employee.EmployeeResponse {
	t.Helper()
	resp, err := e.svc.CreateEmployee(e.admin, employee.CreateEmployeeRequest{
		Name: name, Email: email, Department: department, Position: position,
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) selfContext(t *testing.T, resp employee.EmployeeResponse) context.Context {
	t.Helper()
	return sessionContext(t, auth.Session{Identity: auth.Identity{ID: resp.ID, Name: resp.Name, Email: resp.Email}})
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestCreateAndGetEmployee(t *testing.T) {
	env := newTestEnv(t)

	created := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)

	got, err := env.svc.GetEmployee(env.admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = env.svc.GetEmployee(env.admin, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateEmployee_Rules(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")

	_, err := env.svc.CreateEmployee(env.admin, employee.CreateEmployeeRequest{
		Name: "Other Ann", Email: "ANN@company.com", Department: "HR", Position: "Manager",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = env.svc.CreateEmployee(env.admin, employee.CreateEmployeeRequest{
		Name: "Bob", Email: "bob@company.com", Department: "Legal", Position: "Manager",
	})
	assert.ErrorIs(t, err, employee.ErrUnknownDepartment)

	_, err = env.svc.CreateEmployee(env.admin, employee.CreateEmployeeRequest{Email: "bad"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "name")
	assert.Contains(t, verrs.ToMap(), "email")

	assert.Len(t, env.store.Employees(), 1)
}

func TestAdminOperations_RequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")
	self := env.selfContext(t, created)

	_, err := env.svc.ListEmployees(self, employee.ListEmployeeRequest{})
	assert.ErrorIs(t, err, auth.ErrAdminRequired)
	_, err = env.svc.CreateEmployee(self, employee.CreateEmployeeRequest{})
	assert.ErrorIs(t, err, auth.ErrAdminRequired)
	assert.ErrorIs(t, env.svc.DeleteEmployee(self, created.ID), auth.ErrAdminRequired)

	_, err = env.svc.GetEmployee(context.Background(), created.ID)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestListEmployees(t *testing.T) {
	env := newTestEnv(t)
	ann := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")
	env.create(t, "Bob Stone", "bob@company.com", "Engineering", "Developer")
	carl := env.create(t, "Carl Lee", "carl@company.com", "Engineering", "Manager")

	_, err := env.svc.UpdateEmployee(env.admin, employee.UpdateEmployeeRequest{ID: carl.ID, IsActive: boolPtr(false)})
	require.NoError(t, err)

	all, err := env.svc.ListEmployees(env.admin, employee.ListEmployeeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	lee, err := env.svc.ListEmployees(env.admin, employee.ListEmployeeRequest{Search: "lee", Status: "active"})
	require.NoError(t, err)
	require.Equal(t, 1, lee.Total)
	assert.Equal(t, ann.ID, lee.Employees[0].ID)

	eng, err := env.svc.ListEmployees(env.admin, employee.ListEmployeeRequest{Department: "Engineering", Position: "all"})
	require.NoError(t, err)
	assert.Equal(t, 2, eng.Total)

	_, err = env.svc.ListEmployees(env.admin, employee.ListEmployeeRequest{Status: "retired"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateAndDeleteEmployee(t *testing.T) {
	env := newTestEnv(t)
	ann := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")

	updated, err := env.svc.UpdateEmployee(env.admin, employee.UpdateEmployeeRequest{
		ID: ann.ID, Department: strPtr("Sales"), Name: strPtr("Ann Stone"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sales", updated.Department)
	assert.Equal(t, "Ann Stone", updated.Name)

	_, err = env.svc.UpdateEmployee(env.admin, employee.UpdateEmployeeRequest{ID: ann.ID, Position: strPtr("Pilot")})
	assert.ErrorIs(t, err, employee.ErrUnknownPosition)

	_, _, err = env.store.ClockInFor(context.Background(), ann.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteEmployee(env.admin, ann.ID))
	assert.Empty(t, env.store.Employees())
	assert.Empty(t, env.store.EmployeeTimeEntries(ann.ID))

	assert.ErrorIs(t, env.svc.DeleteEmployee(env.admin, ann.ID), employee.ErrEmployeeNotFound)
}

func TestSetManualHours(t *testing.T) {
	env := newTestEnv(t)
	ann := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")

	hours := 12.345
	resp, err := env.svc.SetManualHours(env.admin, ann.ID, employee.ManualHoursRequest{Hours: &hours})
	require.NoError(t, err)
	require.NotNil(t, resp.ManualTotalHours)
	assert.Equal(t, 12.35, *resp.ManualTotalHours)

	resp, err = env.svc.SetManualHours(env.admin, ann.ID, employee.ManualHoursRequest{})
	require.NoError(t, err)
	assert.Nil(t, resp.ManualTotalHours)

	negative := -1.0
	_, err = env.svc.SetManualHours(env.admin, ann.ID, employee.ManualHoursRequest{Hours: &negative})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestSelfService(t *testing.T) {
	env := newTestEnv(t)
	ann := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")
	self := env.selfContext(t, ann)

	const picture = "data:image/png;base64,iVBORw0KGgo="
	resp, err := env.svc.UpdateProfile(self, employee.UpdateProfileRequest{Name: strPtr("Ann Marie"), ProfilePicture: strPtr(picture)})
	require.NoError(t, err)
	assert.Equal(t, "Ann Marie", resp.Name)
	require.NotNil(t, resp.ProfilePicture)

	resp, err = env.svc.RemoveProfilePicture(self)
	require.NoError(t, err)
	assert.Nil(t, resp.ProfilePicture)

	err = env.svc.ChangePassword(self, employee.ChangePasswordRequest{CurrentPassword: "nope!!", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, employee.ErrWrongPassword)

	err = env.svc.ChangePassword(self, employee.ChangePasswordRequest{CurrentPassword: employee.DefaultPassword, NewPassword: "newsecret"})
	require.NoError(t, err)

	_, err = env.store.Authenticate(context.Background(), "ann@company.com", "newsecret")
	assert.NoError(t, err)
}

func TestSelfService_RejectsRemovedOrInactiveEmployee(t *testing.T) {
	env := newTestEnv(t)
	ann := env.create(t, "Ann Lee", "ann@company.com", "HR", "Manager")
	bob := env.create(t, "Bob Ray", "bob@company.com", "Sales", "Analyst")
	annCtx := env.selfContext(t, ann)
	bobCtx := env.selfContext(t, bob)

	_, err := env.svc.UpdateEmployee(env.admin, employee.UpdateEmployeeRequest{ID: ann.ID, IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = env.svc.UpdateProfile(annCtx, employee.UpdateProfileRequest{Name: strPtr("Ann Marie")})
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
	err = env.svc.ChangePassword(annCtx, employee.ChangePasswordRequest{CurrentPassword: employee.DefaultPassword, NewPassword: "newsecret"})
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)

	stored, err := env.store.GetEmployee(ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", stored.Name)

	require.NoError(t, env.svc.DeleteEmployee(env.admin, bob.ID))
	_, err = env.svc.RemoveProfilePicture(bobCtx)
	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestSelfService_BuiltInIdentities(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.UpdateProfile(env.admin, employee.UpdateProfileRequest{Name: strPtr("Root")})
	assert.ErrorIs(t, err, employee.ErrNotAnEmployee)

	legacy := sessionContext(t, auth.Session{Identity: auth.LegacyEmployeeIdentity()})
	_, err = env.svc.RemoveProfilePicture(legacy)
	assert.ErrorIs(t, err, employee.ErrNotAnEmployee)
}
