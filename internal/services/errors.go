package services

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP
// status codes; anything unwrapped is treated as a 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not allowed")
	ErrConflict   = errors.New("resource conflict")
	ErrGateway    = errors.New("payment gateway error")
)
