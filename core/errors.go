package core

import "errors"

// Constraint violations - a uniqueness invariant was broken.
// Surfaced to the caller, never retried automatically.
var (
	ErrEmailExists   = errors.New("email already registered")       // 409 Conflict
	ErrAccountExists = errors.New("account link already exists")    // 409 Conflict
	ErrTokenExists   = errors.New("verification token collision")   // 409 Conflict
	ErrSessionExists = errors.New("session token already recorded") // 409 Conflict
)

// Not-found errors. Deletes treat these as a no-op, updates surface them.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenNotFound   = errors.New("verification token not found")
)

// Validation errors (caller input)
var (
	ErrEmailRequired      = errors.New("email is required")                   // 400
	ErrSessionExpiresPast = errors.New("session expiry is not in the future") // 400
)

// Flow errors
var (
	// ErrTokenInvalid is the single outward failure for a verification
	// token that is missing, already consumed, or expired. Callers must
	// not distinguish which case applies.
	ErrTokenInvalid = errors.New("sign-in link is invalid or has expired")
)

// ErrStorageUnavailable wraps connection, pool, and disk failures. The
// detail is logged server-side; callers show a generic "try again".
var ErrStorageUnavailable = errors.New("storage unavailable")

// Config errors (server-side configuration)
var (
	ErrStorageRequired = errors.New("storage adapter is required") // 500
	ErrMailerRequired  = errors.New("mailer is required")          // 500
	ErrSecretRequired  = errors.New("secret is required")          // 500
	ErrSecretTooShort  = errors.New("secret too short")            // 500
)
