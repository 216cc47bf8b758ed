package core

import "time"

// User represents a person in the authentication store
//
// This is the "identity" - who someone is
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	EmailVerified *time.Time `json:"emailVerified"`
	Name          string     `json:"name,omitempty"`
	Image         *string    `json:"image,omitempty"`
}

// Account links a User to an external authentication provider
//
// This is the "credential" - how someone proves who they are.
// The email flow only ever writes provider "email", but the OAuth-style
// token fields are part of the storage contract so a provider adapter can
// be dropped in without schema changes.
type Account struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	Type              string     `json:"type"` // "email", "oauth"
	Provider          string     `json:"provider"`
	ProviderAccountID string     `json:"providerAccountId"`
	AccessToken       *string    `json:"-"` // Never expose in JSON
	RefreshToken      *string    `json:"-"` // Never expose in JSON
	Scope             *string    `json:"scope,omitempty"`
	ExpiresAt         *time.Time `json:"expiresAt,omitempty"`
}

// Session is a server-side session record. Sessions are carried primarily
// as signed stateless tokens, so this entity is part of the storage
// contract but optional in practice.
type Session struct {
	ID           string    `json:"id"`
	SessionToken string    `json:"sessionToken"`
	UserID       string    `json:"userId"`
	Expires      time.Time `json:"expires"`
}

// VerificationToken is a single-use magic-link credential. The composite
// key (Identifier, Token) is unique and the record is deleted on first
// successful use.
type VerificationToken struct {
	Identifier string    `json:"identifier"` // the target email
	Token      string    `json:"token"`
	Expires    time.Time `json:"expires"`
}

// SessionData is the session view exposed to clients: the claims projected
// out of a verified token, never recomputed on read.
type SessionData struct {
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Expires time.Time `json:"expires"`
}
