// Package apperr defines the error taxonomy shared by the domain services.
// Services return these types; handlers translate them into HTTP responses.
// Nothing in the domain layer panics across the operation boundary.
package apperr

import "fmt"

// ValidationError reports a malformed or missing input field. It is raised
// before any persistence write happens.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PreconditionError reports a request that is well-formed but conflicts with
// the current state of the record, e.g. consent already recorded, or an email
// contact method chosen for a referral with no email on file. The Field lets
// the caller re-prompt for that one input without losing the rest.
type PreconditionError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed on %q: %s", e.Field, e.Message)
}

// NewPreconditionError creates a PreconditionError attributed to a field.
func NewPreconditionError(field, message string) *PreconditionError {
	return &PreconditionError{Field: field, Message: message}
}

// NotFoundError reports a referenced record that does not exist at mutation
// time (double delete, delete-then-update race).
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
