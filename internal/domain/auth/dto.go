package auth

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type IdentityResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
	IsAdmin        bool    `json:"is_admin"`
}

func NewIdentityResponse(s Session) IdentityResponse {
	return IdentityResponse{
		ID:             s.Identity.ID,
		Name:           s.Identity.Name,
		Email:          s.Identity.Email,
		Department:     s.Identity.Department,
		Position:       s.Identity.Position,
		ProfilePicture: s.Identity.ProfilePicture,
		IsAdmin:        s.IsAdmin,
	}
}

type TokenResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   int64            `json:"expires_at"`
	User        IdentityResponse `json:"user"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
