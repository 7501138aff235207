package employee

import "github.com/cmlabs-hris/timeclock-go/internal/domain/auth"

// Employee is a directory record. JSON field names match the persisted
// "employees" key shared with the browser client. Password holds a bcrypt hash.
type Employee struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Department       string   `json:"department"`
	Position         string   `json:"position"`
	IsActive         bool     `json:"isActive"`
	CreatedAt        string   `json:"createdAt"`
	Password         string   `json:"password,omitempty"`
	ProfilePicture   *string  `json:"profilePicture,omitempty"`
	ManualTotalHours *float64 `json:"manualTotalHours,omitempty"`
}

// DefaultPassword is assigned when an employee is created without one.
const DefaultPassword = "password123"

// Identity returns the public view used as a session identity.
func (e Employee) Identity() auth.Identity {
	return auth.Identity{
		ID:             e.ID,
		Name:           e.Name,
		Email:          e.Email,
		Department:     e.Department,
		Position:       e.Position,
		ProfilePicture: e.ProfilePicture,
	}
}

// Clone returns a copy that shares no pointers with e.
func (e Employee) Clone() Employee {
	out := e
	if e.ProfilePicture != nil {
		v := *e.ProfilePicture
		out.ProfilePicture = &v
	}
	if e.ManualTotalHours != nil {
		v := *e.ManualTotalHours
		out.ManualTotalHours = &v
	}
	return out
}
