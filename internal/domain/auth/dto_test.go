package auth

import (
	"testing"

	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: AdminEmail, Password: AdminPassword}
	assert.NoError(t, req.Validate())

	req = LoginRequest{Email: "not-an-email"}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	m := verrs.ToMap()
	assert.Contains(t, m, "email")
	assert.Contains(t, m, "password")
}

func TestIsReservedEmail(t *testing.T) {
	assert.True(t, IsReservedEmail("admin@company.com"))
	assert.True(t, IsReservedEmail("employee@company.com"))
	assert.False(t, IsReservedEmail("jane@company.com"))
}
