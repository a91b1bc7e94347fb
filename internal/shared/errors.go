package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input table errors
	ErrInputMissing = fmt.Errorf("input table missing")
	ErrEmptyTable   = fmt.Errorf("table is empty")
	ErrMalformedRow = fmt.Errorf("malformed row")

	// Collaborator and service errors
	ErrCollaboratorFailed = fmt.Errorf("collaborator failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Persistence errors
	ErrNotFound        = fmt.Errorf("not found")
	ErrWorkoutNotFound = fmt.Errorf("workout not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
