package crud

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrReadOnly       = errors.New("resource is read-only")
	ErrNoStatus       = errors.New("resource has no status toggle")
	ErrNotDeletable   = errors.New("resource cannot be deleted")
	ErrMissingID      = errors.New("record id is required")
	ErrInvalidForm    = errors.New("form has validation errors")
	ErrUnexpectedBody = errors.New("unexpected response shape")
)
