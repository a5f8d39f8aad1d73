package common

import "fmt"

// NotFoundError indicates a page element was not found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError indicates invalid input data or configuration.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// SubmissionError indicates the contact form could not be delivered.
type SubmissionError struct {
	Submitter string
	Message   string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s submitter error: %s", e.Submitter, e.Message)
}

// NewSubmissionError creates a new SubmissionError.
func NewSubmissionError(submitter, message string) *SubmissionError {
	return &SubmissionError{Submitter: submitter, Message: message}
}
