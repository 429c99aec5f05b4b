package patient

import "errors"

var (
	ErrNotFound    = errors.New("patient not found")
	ErrInvalidData = errors.New("invalid patient data")
	ErrConflict    = errors.New("patient version conflict")
)
