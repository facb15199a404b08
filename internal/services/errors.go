package services

import "errors"

// Service-level error taxonomy. Handlers map these to HTTP statuses via
// errors.Is; anything outside the list becomes a generic 500.
var (
	ErrValidation   = errors.New("validation failed")
	ErrEmailTaken   = errors.New("email already registered")
	ErrTicketTaken  = errors.New("unique id already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)
