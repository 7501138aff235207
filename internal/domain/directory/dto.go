package directory

import "github.com/cmlabs-hris/timeclock-go/internal/pkg/validator"

type NameRequest struct {
	Name string `json:"name"`
}

func (r *NameRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	if len(r.Name) > 100 {
		return validator.ValidationErrors{{Field: "name", Message: "name must not exceed 100 characters"}}
	}
	return nil
}

type ListResponse struct {
	Items []string `json:"items"`
}

// AddResponse reports whether an add changed the list. Adding a name that
// already exists is not an error.
type AddResponse struct {
	Name  string   `json:"name"`
	Added bool     `json:"added"`
	Items []string `json:"items"`
}
