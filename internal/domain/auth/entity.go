package auth

// Identity is the public view of whoever is logged in. It never carries a
// password. JSON field names match the persisted "user" key.
type Identity struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Position       string  `json:"position"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// Session is an authenticated identity plus its admin flag.
type Session struct {
	Identity Identity
	IsAdmin  bool
}

// Built-in credentials recognised before the employee directory is consulted.
const (
	AdminEmail    = "admin@company.com"
	AdminPassword = "admin123"

	LegacyEmployeeEmail    = "employee@company.com"
	LegacyEmployeePassword = "password"
)

func AdminIdentity() Identity {
	return Identity{
		ID:         "admin",
		Name:       "Admin User",
		Email:      AdminEmail,
		Department: "Administration",
		Position:   "System Administrator",
	}
}

func LegacyEmployeeIdentity() Identity {
	return Identity{
		ID:         "1",
		Name:       "John Doe",
		Email:      LegacyEmployeeEmail,
		Department: "Engineering",
		Position:   "Developer",
	}
}

// IsReservedEmail reports whether email belongs to a built-in credential.
func IsReservedEmail(email string) bool {
	return email == AdminEmail || email == LegacyEmployeeEmail
}
