package orgchart

import "errors"

var (
	ErrInvalidFirstName     = errors.New("orgchart: invalid first name")
	ErrInvalidLastName      = errors.New("orgchart: invalid last name")
	ErrInvalidEmail         = errors.New("orgchart: invalid email")
	ErrInvalidID            = errors.New("orgchart: invalid id")
	ErrEmployeeNotFound     = errors.New("orgchart: employee not found")
	ErrManagerNotFound      = errors.New("orgchart: manager not found")
	ErrManagerCycle         = errors.New("orgchart: manager assignment would create a cycle")
	ErrEmailAlreadyExists   = errors.New("orgchart: email already exists")
	ErrMissingInfoSource    = errors.New("orgchart: new employee info source is required")
	ErrMissingManagerSource = errors.New("orgchart: employee manager source is required")
)
