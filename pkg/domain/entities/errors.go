package entities

import "errors"

var (
	// ErrValidation marks input that violates a field rule
	ErrValidation = errors.New("validation error")
	// ErrUserError marks an operation refused by a business rule
	ErrUserError = errors.New("user error")
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("already exists")
	// ErrRestricted marks a delete refused because the record is still referenced
	ErrRestricted = errors.New("record is referenced")
)
