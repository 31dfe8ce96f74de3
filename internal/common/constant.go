package common

import "time"

const (
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "token"

	// SessionTTL is the fixed lifetime of a session token.
	SessionTTL = 7 * 24 * time.Hour

	// VerificationTTL is how long an email verification token stays valid.
	VerificationTTL = 24 * time.Hour

	// VerificationTokenBytes is the entropy of a verification token before hex encoding.
	VerificationTokenBytes = 32

	// PasswordHashCost is the bcrypt work factor.
	PasswordHashCost = 12
)
