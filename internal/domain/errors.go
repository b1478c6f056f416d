package domain

import "errors"

// Sentinel errors shared across stores and services.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
