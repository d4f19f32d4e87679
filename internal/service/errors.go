package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrClientNotFound is returned when a client does not exist or is
	// owned by another rep
	ErrClientNotFound = errors.New("client not found")

	// ErrVisitNotFound is returned when a visit does not exist or is
	// owned by another rep
	ErrVisitNotFound = errors.New("visit not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrWarehouseUnavailable is returned when the ERP warehouse
	// connection is not configured
	ErrWarehouseUnavailable = errors.New("data warehouse not available")
)
