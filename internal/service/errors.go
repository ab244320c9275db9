package service

import "errors"

var (
	// ErrValidation indicates a required field is missing or malformed.
	// Rejected at the mutation boundary, never coerced.
	ErrValidation = errors.New("validation failed")

	// ErrForeignKey indicates a referenced coordinator or project root no
	// longer exists in the durable store. Surfaced only on explicit
	// save/submit actions, never during autosave.
	ErrForeignKey = errors.New("referenced record does not exist")

	// ErrTransientStore indicates a storage failure that may succeed on
	// retry. Swallowed during autosave, blocking during explicit actions.
	ErrTransientStore = errors.New("draft store temporarily unavailable")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
