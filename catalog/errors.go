package catalog

import "errors"

var (
	// ErrValidation signals a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing entity, or one the caller may not see.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals that the caller does not own the restaurant.
	ErrForbidden = errors.New("not the restaurant owner")
	// ErrConflict signals that concurrent edits kept invalidating the keyword index.
	ErrConflict = errors.New("concurrent update, retry")
	// ErrInternal signals a storage fault.
	ErrInternal = errors.New("internal error")
)
