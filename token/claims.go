package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dhalverson/homebase/core"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims is the payload stamped onto the signed session token at
// issuance. Role is derived once from the admin allow-list and stays
// fixed for the lifetime of the token: an allow-list change takes effect
// only at the next sign-in.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// SessionData projects the claims, unchanged, into the session object
// exposed to the rest of the application. Nothing is recomputed on read.
func (c *Claims) SessionData() core.SessionData {
	data := core.SessionData{
		Email: c.Email,
		Role:  c.Role,
	}
	if c.ExpiresAt != nil {
		data.Expires = c.ExpiresAt.Time
	}
	return data
}

// AdminSet is the statically configured allow-list of administrator
// emails, held lower-cased.
type AdminSet map[string]struct{}

// ParseAdminList builds an AdminSet from a comma-separated list. Entries
// are trimmed and lower-cased; empty entries are dropped.
func ParseAdminList(raw string) AdminSet {
	set := make(AdminSet)
	for _, entry := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(entry))
		if email == "" {
			continue
		}
		set[email] = struct{}{}
	}
	return set
}

// RoleFor derives the role claim for an email. Comparison is
// case-insensitive.
func (s AdminSet) RoleFor(email string) string {
	if _, ok := s[strings.ToLower(strings.TrimSpace(email))]; ok {
		return RoleAdmin
	}
	return RoleUser
}
