package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dhalverson/homebase/core"
	"github.com/dhalverson/homebase/mailer"
	"github.com/dhalverson/homebase/pkg/crypto"
)

// DefaultLinkTTL is the verification-token window. Minutes-scale, on
// purpose much shorter than the session token lifetime.
const DefaultLinkTTL = 10 * time.Minute

// emailProvider is the provider name under which magic-link identities
// are linked in the accounts relation.
const emailProvider = "email"

// LinkService issues and redeems one-time sign-in links.
type LinkService struct {
	db      core.AuthStorage
	mail    mailer.Mailer
	baseURL string
	ttl     time.Duration
}

func NewLinkService(db core.AuthStorage, mail mailer.Mailer, baseURL string, ttl time.Duration) *LinkService {
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	return &LinkService{
		db:      db,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
	}
}

// NormalizeEmail lower-cases and trims an address. Every email entering
// the flow passes through here so the store only ever sees one casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Start creates a verification token for email and hands the one-time
// URL to the configured delivery. If delivery fails the token is
// consumed again immediately, so a user is never told "sent" for a link
// that never left the process.
func (s *LinkService) Start(email, next string) error {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return core.ErrEmailRequired
	}

	value, err := crypto.NewToken(crypto.DefaultTokenLength)
	if err != nil {
		return fmt.Errorf("generate link token: %w", err)
	}

	vt := &core.VerificationToken{
		Identifier: email,
		Token:      value,
		Expires:    time.Now().Add(s.ttl),
	}
	if err := s.db.CreateVerificationToken(vt); err != nil {
		return fmt.Errorf("store link token: %w", err)
	}

	if err := s.mail.LoginEmail(email, s.callbackURL(email, value, next)); err != nil {
		_, _ = s.db.UseVerificationToken(email, value)
		return fmt.Errorf("deliver sign-in link: %w", err)
	}
	return nil
}

func (s *LinkService) callbackURL(email, tokenValue, next string) string {
	params := url.Values{}
	params.Set("email", email)
	params.Set("token", tokenValue)
	if next != "" {
		params.Set("next", next)
	}
	return s.baseURL + "/auth/verify?" + params.Encode()
}

// Redeem consumes the verification token and resolves or creates the
// identity it was bound to. Expired, missing, and already-used tokens
// all collapse to ErrTokenInvalid; callers must not reveal which.
func (s *LinkService) Redeem(identifier, tokenValue string) (*core.User, error) {
	identifier = NormalizeEmail(identifier)

	if _, err := s.db.UseVerificationToken(identifier, tokenValue); err != nil {
		if errors.Is(err, core.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, core.ErrTokenInvalid
	}

	user, err := s.db.GetUserByEmail(identifier)
	switch {
	case err == nil:
		if user.EmailVerified == nil {
			now := time.Now()
			user.EmailVerified = &now
			if err := s.db.UpdateUser(user); err != nil {
				return nil, fmt.Errorf("mark email verified: %w", err)
			}
		}
	case errors.Is(err, core.ErrUserNotFound):
		now := time.Now()
		user = &core.User{Email: identifier, EmailVerified: &now}
		if err := s.db.CreateUser(user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	default:
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	account := &core.Account{
		UserID:            user.ID,
		Type:              emailProvider,
		Provider:          emailProvider,
		ProviderAccountID: identifier,
	}
	if err := s.db.LinkAccount(account); err != nil && !errors.Is(err, core.ErrAccountExists) {
		return nil, fmt.Errorf("link account: %w", err)
	}

	return user, nil
}
