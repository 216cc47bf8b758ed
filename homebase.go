// Package homebase wires the passwordless authentication core: a storage
// backend, the magic-link issuer, the session-claims signer, and an HTTP
// adapter that mounts the auth endpoints and the route gate.
package homebase

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhalverson/homebase/core"
	"github.com/dhalverson/homebase/mailer"
	"github.com/dhalverson/homebase/services"
	"github.com/dhalverson/homebase/token"
)

// interfaces
type (
	AuthStorage = core.AuthStorage
	Mailer      = mailer.Mailer
)

// entities
type (
	User              = core.User
	Account           = core.Account
	Session           = core.Session
	VerificationToken = core.VerificationToken
	SessionData       = core.SessionData
)

var (
	ErrEmailExists   = core.ErrEmailExists
	ErrUserNotFound  = core.ErrUserNotFound
	ErrTokenInvalid  = core.ErrTokenInvalid
	ErrTokenNotFound = core.ErrTokenNotFound
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrMailerRequired  = core.ErrMailerRequired
	ErrSecretRequired  = core.ErrSecretRequired
	ErrSecretTooShort  = core.ErrSecretTooShort
)

const defaultSecretLen = 32

// HTTPAdapter mounts the auth endpoints and the route gate onto a host
// framework.
type HTTPAdapter interface {
	RegisterRoutes(h *Homebase) error
}

type Config struct {
	Secret  string
	Storage core.AuthStorage
	Mailer  mailer.Mailer

	// Optional config
	HTTP        HTTPAdapter
	AdminEmails string // comma-separated allow-list
	BaseURL     string
	SessionTTL  time.Duration
	LinkTTL     time.Duration
	Log         zerolog.Logger
}

type Homebase struct {
	Storage core.AuthStorage
	Links   *services.LinkService
	Signer  *token.Signer
	Log     zerolog.Logger
}

func New(config Config) (*Homebase, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}
	if config.Mailer == nil {
		return nil, ErrMailerRequired
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	admins := token.ParseAdminList(config.AdminEmails)

	h := &Homebase{
		Storage: config.Storage,
		Links:   services.NewLinkService(config.Storage, config.Mailer, baseURL, config.LinkTTL),
		Signer:  token.NewSigner(config.Secret, config.SessionTTL, admins),
		Log:     config.Log,
	}

	if config.HTTP != nil {
		if err := config.HTTP.RegisterRoutes(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}
