package core

type UserStorage interface {
	// CreateUser assigns a new unique ID. Email must be present; a
	// duplicate email fails with ErrEmailExists.
	CreateUser(u *User) error

	GetUserByID(id string) (*User, error)
	// GetUserByEmail is an exact match; callers normalize case first.
	GetUserByEmail(email string) (*User, error)
	GetUserByAccount(provider, providerAccountID string) (*User, error)

	UpdateUser(u *User) error

	// DeleteUser cascades to the user's accounts and sessions and is a
	// no-op when the id is already absent.
	DeleteUser(id string) error
}

type AccountStorage interface {
	// LinkAccount fails with ErrAccountExists on a duplicate
	// (provider, providerAccountID) pair.
	LinkAccount(a *Account) error

	// UnlinkAccount is idempotent.
	UnlinkAccount(provider, providerAccountID string) error
}

type SessionStorage interface {
	CreateSession(s *Session) error
	GetSessionAndUser(sessionToken string) (*Session, *User, error)
	UpdateSession(s *Session) (*Session, error)

	// DeleteSession is idempotent.
	DeleteSession(sessionToken string) error
}

type TokenStorage interface {
	CreateVerificationToken(t *VerificationToken) error

	// UseVerificationToken atomically reads and deletes the token for
	// (identifier, token). Concurrent redemption of the same token must
	// not both succeed; the loser observes ErrTokenNotFound. A token
	// past its expiry is also reported as ErrTokenNotFound.
	UseVerificationToken(identifier, token string) (*VerificationToken, error)
}

// AuthStorage is the full persistence contract. Both backends implement
// it; the backend is picked once at process start, never per call.
type AuthStorage interface {
	UserStorage
	AccountStorage
	SessionStorage
	TokenStorage
}
