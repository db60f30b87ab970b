package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	ErrRepository = errors.New("repository failure")
)

// NotFoundError reports a single-row lookup that matched nothing.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, ErrNotFound)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a caller-supplied parameter that violates a constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RepositoryError reports a backend that was unreachable or rejected the query.
type RepositoryError struct {
	Op     string
	Entity string
	Err    error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// Is matches ErrRepository.
func (e *RepositoryError) Is(target error) bool {
	return target == ErrRepository
}

// NewNotFound builds a NotFoundError.
func NewNotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewValidation builds a ValidationError.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NewRepositoryError wraps a backend failure with the operation that produced it.
func NewRepositoryError(op, entity string, err error) error {
	return &RepositoryError{Op: op, Entity: entity, Err: err}
}
