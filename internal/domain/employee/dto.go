package employee

import (
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	IsActive       *bool   `json:"is_active"`
	Password       string  `json:"password"`
	ProfilePicture *string `json:"profile_picture"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateEmail(r.Email)...)

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	if r.Password != "" {
		errs = append(errs, validatePassword("password", r.Password)...)
	}
	if r.ProfilePicture != nil {
		errs = append(errs, validatePicture(*r.ProfilePicture)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest is a partial update: nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID             string  `json:"-"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
	IsActive       *bool   `json:"is_active"`
	Password       *string `json:"password"`
	ProfilePicture *string `json:"profile_picture"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		errs = append(errs, validateName(*r.Name)...)
	}
	if r.Email != nil {
		errs = append(errs, validateEmail(*r.Email)...)
	}
	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department cannot be empty",
		})
	}
	if r.Position != nil && validator.IsEmpty(*r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position cannot be empty",
		})
	}
	if r.Password != nil {
		errs = append(errs, validatePassword("password", *r.Password)...)
	}
	if r.ProfilePicture != nil {
		errs = append(errs, validatePicture(*r.ProfilePicture)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateProfileRequest is the self-service subset of an employee update.
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	ProfilePicture *string `json:"profile_picture"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		errs = append(errs, validateName(*r.Name)...)
	}
	if r.ProfilePicture != nil {
		errs = append(errs, validatePicture(*r.ProfilePicture)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	errs = append(errs, validatePassword("new_password", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualHoursRequest sets or, with a null hours value, clears the manual total.
type ManualHoursRequest struct {
	Hours *float64 `json:"hours"`
}

func (r *ManualHoursRequest) Validate() error {
	if r.Hours != nil && *r.Hours < 0 {
		return validator.ValidationErrors{{
			Field:   "hours",
			Message: "hours must not be negative",
		}}
	}
	return nil
}

type ListEmployeeRequest struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Status     string `json:"status"`
}

func (r *ListEmployeeRequest) Validate() error {
	if r.Status != "" && !validator.IsInSlice(r.Status, []string{"all", "active", "inactive"}) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of all, active, inactive",
		}}
	}
	return nil
}

type EmployeeResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Department       string   `json:"department"`
	Position         string   `json:"position"`
	IsActive         bool     `json:"is_active"`
	CreatedAt        string   `json:"created_at"`
	ProfilePicture   *string  `json:"profile_picture,omitempty"`
	ManualTotalHours *float64 `json:"manual_total_hours,omitempty"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		Name:             e.Name,
		Email:            e.Email,
		Department:       e.Department,
		Position:         e.Position,
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt,
		ProfilePicture:   e.ProfilePicture,
		ManualTotalHours: e.ManualTotalHours,
	}
}

type ListEmployeeResponse struct {
	Total     int                `json:"total"`
	Employees []EmployeeResponse `json:"employees"`
}

func validateName(name string) validator.ValidationErrors {
	if validator.IsEmpty(name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	if len(name) > 255 {
		return validator.ValidationErrors{{Field: "name", Message: "name must not exceed 255 characters"}}
	}
	return nil
}

func validateEmail(email string) validator.ValidationErrors {
	if validator.IsEmpty(email) {
		return validator.ValidationErrors{{Field: "email", Message: "email is required"}}
	}
	if !validator.IsValidEmail(strings.TrimSpace(email)) {
		return validator.ValidationErrors{{Field: "email", Message: "email must be a valid email address"}}
	}
	return nil
}

func validatePassword(field, password string) validator.ValidationErrors {
	if len(password) < 6 {
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 6 characters long"}}
	}
	if len(password) > 72 {
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	}
	return nil
}

func validatePicture(picture string) validator.ValidationErrors {
	if !validator.IsBase64Image(picture) {
		return validator.ValidationErrors{{
			Field:   "profile_picture",
			Message: "profile_picture must be a base64 data URL of a png, jpeg, gif or webp image",
		}}
	}
	return nil
}
