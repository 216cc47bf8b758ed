package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds the session token lifetime. It is days-scale and
// independent of the minutes-scale verification token window.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrInvalid = errors.New("invalid session token")

	// ErrMalformed marks input that could not be decoded at all, as
	// opposed to a well-formed token that failed validation. The route
	// gate treats the two differently.
	ErrMalformed = errors.New("malformed session token")
)

// Signer issues and verifies HS256 session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	admins AdminSet
}

func NewSigner(secret string, ttl time.Duration, admins AdminSet) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl, admins: admins}
}

func (s *Signer) TTL() time.Duration { return s.ttl }

// Issue signs a session token for email, deriving the role claim from
// the allow-list at this moment.
func (s *Signer) Issue(email string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Email: email,
		Role:  s.admins.RoleFor(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a session token, returning its claims
// unchanged. Any parse, signature, or expiry failure collapses to
// ErrInvalid.
func (s *Signer) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalid
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformed
		}
		return nil, ErrInvalid
	}
	if !t.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
