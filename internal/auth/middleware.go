package auth

import (
	"time"

	"github.com/JoshuaBalles/rgcs/internal/flash"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookie  = "rgcs_session"
	ctxIdentityKey = "identity"
)

// Identity is the authenticated user resolved for the current request.
// Handlers read it from locals instead of ambient globals.
type Identity struct {
	ID        uint
	Email     string
	FirstName string
	Admin     bool
}

// Authorizer decides whether an identity carries the admin capability.
// Kept behind an interface so a storage-backed role could replace the
// configured-address comparison without touching handlers.
type Authorizer interface {
	IsAdmin(email string) bool
}

// EmailAuthorizer grants admin to the single configured address.
type EmailAuthorizer struct {
	AdminEmail string
}

func (a EmailAuthorizer) IsAdmin(email string) bool {
	return NormalizeEmail(email) == NormalizeEmail(a.AdminEmail)
}

// SessionMiddleware resolves the session cookie into an Identity. A
// missing or invalid cookie leaves the request anonymous; the route
// guards decide what anonymous is allowed to reach.
func SessionMiddleware(secret string, authz Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(SessionCookie)
		if tokenStr == "" {
			return c.Next()
		}

		claims, err := ParseToken(secret, tokenStr, Fingerprint(c.Get("User-Agent"), c.IP()))
		if err != nil {
			ClearSessionCookie(c)
			return c.Next()
		}

		c.Locals(ctxIdentityKey, &Identity{
			ID:        claims.UserID,
			Email:     claims.Email,
			FirstName: claims.FirstName,
			Admin:     authz.IsAdmin(claims.Email),
		})
		return c.Next()
	}
}

// IdentityFrom returns the request's identity, or nil when anonymous.
func IdentityFrom(c *fiber.Ctx) *Identity {
	id, _ := c.Locals(ctxIdentityKey).(*Identity)
	return id
}

func SetSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Decision is the outcome of a route guard.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectHome // send the caller to its own home view
)

// Decide gates a route. Anonymous callers go to login; authenticated
// callers on the wrong side of the admin split go to their own home.
func Decide(id *Identity, needAdmin bool) Decision {
	if id == nil {
		return RedirectToLogin
	}
	if id.Admin != needAdmin {
		return RedirectHome
	}
	return Allow
}

// HomePath is the home view for an identity: the review screen for the
// admin, the booking form for everyone else.
func HomePath(id *Identity) string {
	if id.Admin {
		return "/admin"
	}
	return "/home"
}

// RequireUser protects the regular-user routes.
func RequireUser() fiber.Handler { return guard(false) }

// RequireAdmin protects the review workflow.
func RequireAdmin() fiber.Handler { return guard(true) }

func guard(needAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := IdentityFrom(c)
		switch Decide(id, needAdmin) {
		case Allow:
			return c.Next()
		case RedirectToLogin:
			flash.Set(c, "error", "Please log in to continue.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		default:
			return c.Redirect(HomePath(id), fiber.StatusSeeOther)
		}
	}
}
