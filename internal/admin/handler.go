// Package admin is the review workflow: the configured administrator
// lists, sorts, and searches bookings and flips their confirmed flag.
package admin

import (
	"fmt"
	"strconv"

	"github.com/JoshuaBalles/rgcs/internal/booking"
	"github.com/JoshuaBalles/rgcs/internal/database"
	"github.com/JoshuaBalles/rgcs/internal/flash"

	"github.com/gofiber/fiber/v2"
)

type ActionRequest struct {
	Action    string `json:"action" form:"action"`
	ServiceID string `json:"service_id" form:"service_id"`
	Confirmed string `json:"confirmed" form:"confirmed"`
}

// GET /admin?sort=&order= lists every booking in the requested order.
func PageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sortKey := c.Query("sort")
		order := c.Query("order")

		list, err := booking.ListAll(database.DB, sortKey, order)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load bookings")
		}

		category, notice := flash.Pop(c)
		return c.JSON(fiber.Map{
			"page":     "admin",
			"bookings": booking.ToResponses(list),
			"notice":   notice,
			"category": category,
		})
	}
}

// POST /admin performs one review action: "search" looks up a booking
// by id, "update" sets its confirmed flag. A missing id is a notice,
// never a hard fault.
func ActionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ActionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		id, err := strconv.ParseUint(body.ServiceID, 10, 32)
		if err != nil {
			flash.Set(c, "error", "Service id must be a number.")
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		serviceID := uint(id)

		switch body.Action {
		case "search":
			svc, err := booking.Get(database.DB, serviceID)
			if err != nil {
				if err == booking.ErrNotFound {
					flash.Set(c, "error", fmt.Sprintf("No booking found with id %d.", serviceID))
					return c.Redirect("/admin", fiber.StatusSeeOther)
				}
				return fiber.NewError(fiber.StatusInternalServerError, "could not look up booking")
			}
			return c.JSON(fiber.Map{
				"page":    "admin",
				"booking": booking.ToResponse(svc),
			})

		case "update":
			confirmed := body.Confirmed == "yes"
			if err := booking.SetConfirmed(database.DB, serviceID, confirmed); err != nil {
				if err == booking.ErrNotFound {
					flash.Set(c, "error", fmt.Sprintf("No booking found with id %d.", serviceID))
					return c.Redirect("/admin", fiber.StatusSeeOther)
				}
				return fiber.NewError(fiber.StatusInternalServerError, "could not update booking")
			}
			flash.Set(c, "success", fmt.Sprintf("Booking %d updated.", serviceID))
			return c.Redirect("/admin", fiber.StatusSeeOther)

		default:
			flash.Set(c, "error", "Unknown action.")
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
	}
}
