package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNothingToSave = errors.New("nothing to save yet: log at least one set or a note")
	ErrCorruptState  = errors.New("corrupt persisted state")
	ErrStorageWrite  = errors.New("storage write failed")
)
