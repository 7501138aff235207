package employee

import (
	"testing"

	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        CreateEmployeeRequest
		wantFields []string
	}{
		{
			name: "valid",
			req: CreateEmployeeRequest{
				Name: "Jane Smith", Email: "jane@company.com",
				Department: "Marketing", Position: "Manager",
			},
		},
		{
			name:       "missing everything",
			req:        CreateEmployeeRequest{},
			wantFields: []string{"name", "email", "department", "position"},
		},
		{
			name: "bad email and short password",
			req: CreateEmployeeRequest{
				Name: "Jane", Email: "jane", Department: "HR", Position: "Manager", Password: "123",
			},
			wantFields: []string{"email", "password"},
		},
		{
			name: "picture is not a data url",
			req: CreateEmployeeRequest{
				Name: "Jane", Email: "jane@company.com", Department: "HR", Position: "Manager",
				ProfilePicture: strPtr("https://example.com/a.png"),
			},
			wantFields: []string{"profile_picture"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			m := verrs.ToMap()
			for _, f := range tt.wantFields {
				assert.Contains(t, m, f)
			}
		})
	}
}

func TestUpdateEmployeeRequest_Validate(t *testing.T) {
	req := UpdateEmployeeRequest{}
	assert.NoError(t, req.Validate(), "empty update is valid")

	req = UpdateEmployeeRequest{Name: strPtr("  "), Department: strPtr("")}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "name")
	assert.Contains(t, verrs.ToMap(), "department")
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	req := ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "s3cret!"}
	assert.NoError(t, req.Validate())

	req = ChangePasswordRequest{NewPassword: "abc"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "current_password")
	assert.Contains(t, verrs.ToMap(), "new_password")
}

func TestManualHoursRequest_Validate(t *testing.T) {
	h := 7.5
	assert.NoError(t, (&ManualHoursRequest{Hours: &h}).Validate())
	assert.NoError(t, (&ManualHoursRequest{}).Validate())

	neg := -1.0
	assert.Error(t, (&ManualHoursRequest{Hours: &neg}).Validate())
}

func TestEmployee_IdentityAndClone(t *testing.T) {
	pic := "data:image/png;base64,AAAA"
	hours := 6.0
	e := Employee{
		ID: "7", Name: "Jane", Email: "jane@company.com", Department: "HR", Position: "Manager",
		Password: "hash", ProfilePicture: &pic, ManualTotalHours: &hours,
	}

	id := e.Identity()
	assert.Equal(t, "7", id.ID)
	assert.Equal(t, &pic, id.ProfilePicture)

	c := e.Clone()
	*c.ManualTotalHours = 1
	assert.Equal(t, 6.0, *e.ManualTotalHours)
}
