package service

import (
	"fmt"
	"time"
)

// Code identifies a workflow failure class for API clients.
type Code string

const (
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeNotFound           Code = "NOT_FOUND"
	CodeRegistrationClosed Code = "REGISTRATION_CLOSED"
	CodeCapacityExceeded   Code = "CAPACITY_EXCEEDED"
	CodePersistence        Code = "PERSISTENCE_ERROR"
)

// WorkflowError is a structured failure surfaced to the caller: a machine
// code, a human message and the moment it happened. Everything that fails
// before the registration insert is reported this way; nothing after the
// insert ever becomes one.
type WorkflowError struct {
	Code      Code
	Message   string
	Timestamp time.Time
	cause     error
}

func (e *WorkflowError) Error() string { return e.Message }

func (e *WorkflowError) Unwrap() error { return e.cause }

func newWorkflowError(code Code, msg string, cause error) *WorkflowError {
	return &WorkflowError{
		Code:      code,
		Message:   msg,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func missingFieldError(field string) *WorkflowError {
	return newWorkflowError(CodeValidation,
		fmt.Sprintf("Missing required field: %s", field), nil)
}
