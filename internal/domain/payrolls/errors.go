package payrolls

import "errors"

var (
	ErrNotFound             = errors.New("payroll not found")
	ErrInvalidConfiguration = errors.New("invalid payroll configuration")
)
