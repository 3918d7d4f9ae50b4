package auth

import (
	"fmt"
	"log"
	"strings"

	"github.com/JoshuaBalles/rgcs/internal/config"
	"github.com/JoshuaBalles/rgcs/internal/database"
	"github.com/JoshuaBalles/rgcs/internal/flash"
	"github.com/JoshuaBalles/rgcs/internal/mailer"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type SignupRequest struct {
	FirstName       string `json:"firstname" form:"firstname"`
	LastName        string `json:"lastname" form:"lastname"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmpassword" form:"confirmpassword"`
}

// GET / and /login. An authenticated caller is bounced to its home view.
func LoginPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := IdentityFrom(c); id != nil {
			return c.Redirect(HomePath(id), fiber.StatusSeeOther)
		}
		category, notice := flash.Pop(c)
		return c.JSON(fiber.Map{
			"page":     "login",
			"notice":   notice,
			"category": category,
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		user, err := Authenticate(database.DB, body.Email, body.Password)
		if err != nil {
			// One generic notice for unknown email and wrong password alike.
			flash.Set(c, "error", "Invalid email or password. Please try again.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		token, err := GenerateToken(cfg.SessionSecret, user, Fingerprint(c.Get("User-Agent"), c.IP()))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not establish session")
		}
		SetSessionCookie(c, token)

		authz := EmailAuthorizer{AdminEmail: cfg.AdminEmail}
		if authz.IsAdmin(user.Email) {
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		return c.Redirect("/home", fiber.StatusSeeOther)
	}
}

func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ClearSessionCookie(c)
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}

func SignupPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category, notice := flash.Pop(c)
		return c.JSON(fiber.Map{
			"page":     "signup",
			"notice":   notice,
			"category": category,
		})
	}
}

func SignupHandler(send mailer.Sender) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if strings.TrimSpace(body.FirstName) == "" || strings.TrimSpace(body.LastName) == "" ||
			strings.TrimSpace(body.Email) == "" || body.Password == "" {
			flash.Set(c, "error", "All fields are required.")
			return c.Redirect("/signup", fiber.StatusSeeOther)
		}
		if body.Password != body.ConfirmPassword {
			flash.Set(c, "error", "Passwords do not match. Please try again.")
			return c.Redirect("/signup", fiber.StatusSeeOther)
		}

		user, err := Register(database.DB, body.FirstName, body.LastName, body.Email, body.Password)
		if err != nil {
			if err == ErrDuplicateEmail {
				flash.Set(c, "error", "Email already exists. Please use a different email.")
				return c.Redirect("/signup", fiber.StatusSeeOther)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not create account")
		}

		// Best effort: the account stands whether or not the mail goes out.
		if err := send.Send(user.Email, "Welcome to RGCS",
			fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now log in and book a service.\n", user.FirstName)); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}

		flash.Set(c, "success", "Successfully Signed Up!")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}

// The password-reset flow was never finished; the form exists but the
// POST just bounces back to login.
func ForgotPasswordPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		category, notice := flash.Pop(c)
		return c.JSON(fiber.Map{
			"page":     "forgotpassword",
			"notice":   notice,
			"category": category,
		})
	}
}

func ForgotPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}
