package directory

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentInUse    = errors.New("department is assigned to one or more employees")
	ErrPositionNotFound   = errors.New("position not found")
	ErrPositionInUse      = errors.New("position is assigned to one or more employees")
)
