package session

import "errors"

var (
	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid session config")

	// ErrEmptySubject is returned when a token is requested without a subject id.
	ErrEmptySubject = errors.New("empty subject id")
)
