package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmailExists       = errors.New("email already registered to an active employee")
	ErrUnknownDepartment = errors.New("department does not exist")
	ErrUnknownPosition   = errors.New("position does not exist")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrNotAnEmployee     = errors.New("identity is not an employee record")
)
