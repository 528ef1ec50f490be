// Package errs defines the error kinds the HTTP boundary translates
// to status codes: validation (400), not-found (404), business-rule
// violation (409), external service failure (502).
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrBusiness   = errors.New("business rule violated")
	ErrExternal   = errors.New("external service failed")
)

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type BusinessError struct {
	Msg string
}

func (e *BusinessError) Error() string { return e.Msg }

func (e *BusinessError) Is(target error) bool { return target == ErrBusiness }

func Business(format string, args ...any) error {
	return &BusinessError{Msg: fmt.Sprintf(format, args...)}
}

type ExternalError struct {
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalError) Is(target error) bool { return target == ErrExternal }

func (e *ExternalError) Unwrap() error { return e.Err }

func External(op string, err error) error {
	return &ExternalError{Op: op, Err: err}
}
