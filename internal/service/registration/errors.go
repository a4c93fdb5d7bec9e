package registration

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidPhone    = errors.New("phone is required")
	ErrInvalidName     = errors.New("name is required")
)
