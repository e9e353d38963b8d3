// Package apperrors defines the coded error type shared by all layers.
//
// Repositories and usecases return *AppError for failures the API must
// classify (validation, not found, conflicts); everything else bubbles up
// unwrapped and is treated as internal.
package apperrors

import (
	"errors"
	"fmt"
)

// Machine-readable error codes exposed to API consumers.
const (
	CodeValidation   = "validation_error"
	CodeNotFound     = "not_found"
	CodeDuplicateUNP = "duplicate_unp"
	CodeIntegrity    = "integrity_error"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeInternal     = "internal_error"
)

// FieldError describes one failed field validation.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// AppError carries a machine-readable code alongside the message.
type AppError struct {
	code    string
	message string
	fields  []FieldError
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

// Code returns the machine-readable error code.
func (e *AppError) Code() string {
	return e.code
}

// Message returns the client-facing message without wrapped detail.
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// New creates an AppError with the given code and message.
func New(code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// NotFound reports a missing (or soft-deleted) resource.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// Validation reports invalid input with a client-facing message.
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// ValidationFields reports invalid input with per-field detail.
func ValidationFields(message string, fields []FieldError) *AppError {
	return &AppError{code: CodeValidation, message: message, fields: fields}
}

// Fields returns per-field validation detail, nil for non-validation errors.
func (e *AppError) Fields() []FieldError {
	return e.fields
}

// Forbidden reports an access-control failure.
func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

// DuplicateUNP reports a tax-identifier uniqueness conflict.
func DuplicateUNP() *AppError {
	return New(CodeDuplicateUNP, "client with this UNP already exists")
}

// CodeOf extracts the error code, defaulting to CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}
	return CodeInternal
}
