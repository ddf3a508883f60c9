// Package common defines shared constants and sentinel errors used across
// qrtrack components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (bad or missing user input).
	ErrorValidation = errors.New("validation error")

	// Entitlement errors (plan limit or capability denial).
	ErrorPlanLimit = errors.New("plan limit reached")
)
