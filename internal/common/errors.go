// Package common defines shared constants and sentinel errors used across
// the ledger server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("invalid input")

	// Credential errors. "No such user" and "wrong password" share one value.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorEmailNotVerified   = errors.New("email not verified")

	// Conflicts surfaced to clients.
	ErrorUserExists      = fmt.Errorf("user %w", ErrorAlreadyExists)
	ErrorHouseholdExists = fmt.Errorf("household %w", ErrorAlreadyExists)

	// Auth errors (invalid, malformed or expired session token).
	ErrInvalidToken = errors.New("invalid token")

	// Verification token is unknown, already consumed or past its expiry.
	ErrorInvalidOrExpiredToken = errors.New("invalid or expired token")
)
