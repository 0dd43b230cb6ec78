package service

import "errors"

var (
	// ErrAccessAlreadyActive rejects a grant while an unexpired grant for
	// the same (user, course, content type) key exists. The caller must
	// close or expire the prior grant first; durations are never merged.
	ErrAccessAlreadyActive = errors.New("access already exists")

	ErrGrantNotFound  = errors.New("grant not found")
	ErrFreezeNotFound = errors.New("freeze not found")
)
