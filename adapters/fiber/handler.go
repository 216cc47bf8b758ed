package fiber

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/dhalverson/homebase"
	"github.com/dhalverson/homebase/core"
)

// handleSignIn accepts an email from a form submission and triggers the
// magic-link issuer. The response body is the same whether or not the
// email belongs to a known user, so the endpoint leaks no enumeration
// signal. Only an internal failure (storage, delivery) changes the
// outcome, and then only to a generic try-again.
func handleSignIn(h *homebase.Homebase) fiber.Handler {
	return func(c fiber.Ctx) error {
		email := c.FormValue("email")
		next := c.FormValue("next")

		err := h.Links.Start(email, next)
		if err != nil {
			if errors.Is(err, core.ErrEmailRequired) {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{
					"error": "a valid email address is required",
				})
			}
			h.Log.Error().Err(err).Msg("sign-in link issuance failed")
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "check your email for a sign-in link",
		})
	}
}

// handleVerify consumes the magic-link URL. Success establishes the
// session cookie and lands on the requested destination; every failure
// mode redirects to the same generic sign-in-failed state.
func handleVerify(h *homebase.Homebase) fiber.Handler {
	return func(c fiber.Ctx) error {
		email := c.Query("email")
		linkToken := c.Query("token")

		user, err := h.Links.Redeem(email, linkToken)
		if err != nil {
			if !errors.Is(err, core.ErrTokenInvalid) {
				h.Log.Error().Err(err).Msg("magic-link redemption failed")
			}
			return c.Redirect().Status(http.StatusFound).To(SignInPath + "?error=failed")
		}

		signed, err := h.Signer.Issue(user.Email)
		if err != nil {
			h.Log.Error().Err(err).Msg("session token issuance failed")
			return c.Redirect().Status(http.StatusFound).To(SignInPath + "?error=failed")
		}

		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    signed,
			Path:     "/",
			Expires:  time.Now().Add(h.Signer.TTL()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		return c.Redirect().Status(http.StatusFound).To(safeNext(c.Query("next")))
	}
}

func handleSignOut(h *homebase.Homebase) fiber.Handler {
	return func(c fiber.Ctx) error {
		if raw := extractToken(c); raw != "" {
			// Database-session mode keeps a server-side record; removing
			// it is idempotent and harmless when sessions are pure JWTs.
			_ = h.Storage.DeleteSession(raw)
		}

		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "signed out",
		})
	}
}

// handleSession projects the claims of a valid token into the session
// object. Nothing is recomputed: the role is whatever was stamped at
// issuance.
func handleSession(h *homebase.Homebase) fiber.Handler {
	return func(c fiber.Ctx) error {
		raw := extractToken(c)
		if raw == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": "no session",
			})
		}

		claims, err := h.Signer.Verify(raw)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": "no session",
			})
		}

		return c.Status(http.StatusOK).JSON(claims.SessionData())
	}
}

// safeNext confines the post-sign-in destination to a local path so the
// redirect can't be pointed off-site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
