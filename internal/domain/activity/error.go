package activity

import "errors"

var (
	ErrNotFound    = errors.New("activity not found")
	ErrInvalidData = errors.New("invalid activity data")
	ErrConflict    = errors.New("activity version conflict")
)
