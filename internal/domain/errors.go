package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrExpired         = errors.New("deadline exceeded")
	ErrTooManyAttempts = errors.New("resource exhausted")
	ErrInternal        = errors.New("internal error")
)
