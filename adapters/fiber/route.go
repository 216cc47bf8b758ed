package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dhalverson/homebase"
)

// Paths fixed by the redirect contract: the sign-in UI consumes the
// "next" query parameter appended by the gate.
const (
	SignInPath = "/auth/signin"
	VerifyPath = "/auth/verify"
)

// CookieName carries the signed session token.
const CookieName = "homebase_session"

type Adapter struct {
	app *fiber.App
}

var _ homebase.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

// RegisterRoutes installs the route gate and mounts the auth endpoints.
// The gate is registered first so it runs ahead of any page route the
// host app adds afterwards.
func (a *Adapter) RegisterRoutes(h *homebase.Homebase) error {
	a.app.Use(a.gate(h))

	auth := a.app.Group("/auth")

	auth.Post("/signin", handleSignIn(h))
	auth.Get("/verify", handleVerify(h))
	auth.Post("/signout", handleSignOut(h))
	auth.Get("/session", handleSession(h))

	return nil
}

// extractToken reads the session token from the request. Cookie first
// (the browser flow), then Authorization bearer.
func extractToken(c fiber.Ctx) string {
	if cookie := c.Cookies(CookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
