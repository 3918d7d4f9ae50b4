// Package app assembles the HTTP application: middleware chain and route
// table, kept out of main so tests can drive the full stack.
package app

import (
	"log"

	"github.com/JoshuaBalles/rgcs/internal/admin"
	"github.com/JoshuaBalles/rgcs/internal/auth"
	"github.com/JoshuaBalles/rgcs/internal/booking"
	"github.com/JoshuaBalles/rgcs/internal/config"
	"github.com/JoshuaBalles/rgcs/internal/mailer"

	"github.com/gofiber/fiber/v2"
)

func New(cfg *config.Config, send mailer.Sender) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	// Session and booking pages must never come out of a cache.
	app.Use(func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	})

	authz := auth.EmailAuthorizer{AdminEmail: cfg.AdminEmail}
	app.Use(auth.SessionMiddleware(cfg.SessionSecret, authz))

	// Public
	app.Get("/", auth.LoginPageHandler())
	app.Get("/login", auth.LoginPageHandler())
	app.Post("/login", auth.LoginHandler(cfg))
	app.Get("/signup", auth.SignupPageHandler())
	app.Post("/signup", auth.SignupHandler(send))
	app.Get("/forgotpassword", auth.ForgotPasswordPageHandler())
	app.Post("/forgotpassword", auth.ForgotPasswordHandler())

	// Any authenticated identity
	app.Get("/logout", auth.LogoutHandler())

	// Regular users. The guard is attached per route: group middleware
	// binds by path prefix, and an empty prefix would intercept /admin.
	app.Get("/home", auth.RequireUser(), booking.HomePageHandler())
	app.Post("/home", auth.RequireUser(), booking.CreateBookingHandler(cfg, send))
	app.Get("/bookings", auth.RequireUser(), booking.ListBookingsHandler())

	// Administrator
	adm := app.Group("/admin", auth.RequireAdmin())
	adm.Get("", admin.PageHandler())
	adm.Post("", admin.ActionHandler())

	return app
}
