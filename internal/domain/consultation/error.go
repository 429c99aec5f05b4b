package consultation

import "errors"

var (
	ErrNotFound    = errors.New("consultation not found")
	ErrInvalidData = errors.New("invalid consultation data")
	ErrConflict    = errors.New("consultation version conflict")
)
