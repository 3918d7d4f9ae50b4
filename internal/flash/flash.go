// Package flash carries a one-shot user-visible notice across a redirect
// in a cookie, popped by the next page load.
package flash

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "rgcs_flash"

// Set stores a notice for the next request. Category is "error" or
// "success"; message is shown to the user verbatim.
func Set(c *fiber.Ctx, category, message string) {
	raw := category + "|" + message
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(raw)),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Pop returns the pending notice, if any, and clears it.
func Pop(c *fiber.Ctx) (category, message string) {
	v := c.Cookies(cookieName)
	if v == "" {
		return "", ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	raw, err := base64.URLEncoding.DecodeString(v)
	if err != nil {
		return "", ""
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
