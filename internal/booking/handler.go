package booking

import (
	"fmt"
	"log"

	"github.com/JoshuaBalles/rgcs/internal/auth"
	"github.com/JoshuaBalles/rgcs/internal/config"
	"github.com/JoshuaBalles/rgcs/internal/database"
	"github.com/JoshuaBalles/rgcs/internal/flash"
	"github.com/JoshuaBalles/rgcs/internal/mailer"
	"github.com/JoshuaBalles/rgcs/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	ID            uint    `json:"id"`
	UserID        uint    `json:"user_id"`
	FullName      string  `json:"full_name"`
	MobileNumber  string  `json:"mobile_number"`
	StreetAddress string  `json:"street_address"`
	City          string  `json:"city"`
	RoomSize      float64 `json:"room_size"`
	TypeOfService string  `json:"type_of_service"`
	AddlServices  string  `json:"addl_services"`
	SelectedDate  string  `json:"selected_date"`
	SelectedTime  string  `json:"selected_time"`
	Confirmed     bool    `json:"confirmed"`
}

func ToResponse(s *models.Service) Response {
	return Response{
		ID:            s.ID,
		UserID:        s.UserID,
		FullName:      s.FullName,
		MobileNumber:  s.MobileNumber,
		StreetAddress: s.StreetAddress,
		City:          s.City,
		RoomSize:      s.RoomSize,
		TypeOfService: s.TypeOfService,
		AddlServices:  s.AddlServices,
		SelectedDate:  s.SelectedDate.Format("2006-01-02"),
		SelectedTime:  s.SelectedTime,
		Confirmed:     s.Confirmed,
	}
}

func ToResponses(list []models.Service) []Response {
	out := make([]Response, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}

// GET /home renders the booking form page.
func HomePageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := auth.IdentityFrom(c)
		category, notice := flash.Pop(c)
		return c.JSON(fiber.Map{
			"page":     "home",
			"user":     id.FirstName,
			"notice":   notice,
			"category": category,
		})
	}
}

// POST /home creates a booking from the submitted form and notifies
// the admin address with the details.
func CreateBookingHandler(cfg *config.Config, send mailer.Sender) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := auth.IdentityFrom(c)

		var form Form
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		svc, err := Submit(database.DB, id.ID, form)
		if err != nil {
			if ve, ok := err.(*ValidationError); ok {
				flash.Set(c, "error", "Invalid booking: "+ve.Error())
				return c.Redirect("/home", fiber.StatusSeeOther)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "could not save booking")
		}

		if err := send.Send(cfg.AdminEmail, fmt.Sprintf("New booking #%d", svc.ID),
			fmt.Sprintf("New service request from %s (%s):\n\n"+
				"Name: %s\nMobile: %s\nAddress: %s, %s\nRoom size: %.2f\n"+
				"Service: %s\nExtras: %s\nWhen: %s %s\n",
				id.FirstName, id.Email,
				svc.FullName, svc.MobileNumber, svc.StreetAddress, svc.City, svc.RoomSize,
				svc.TypeOfService, svc.AddlServices, svc.SelectedDate.Format("2006-01-02"), svc.SelectedTime)); err != nil {
			log.Printf("booking notification for #%d failed: %v", svc.ID, err)
		}

		flash.Set(c, "success", "Your booking has been submitted.")
		return c.Redirect("/bookings", fiber.StatusSeeOther)
	}
}

// GET /bookings lists the caller's own bookings.
func ListBookingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := auth.IdentityFrom(c)

		list, err := ListOwn(database.DB, id.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load bookings")
		}

		category, notice := flash.Pop(c)
		return c.JSON(fiber.Map{
			"page":     "bookings",
			"bookings": ToResponses(list),
			"notice":   notice,
			"category": category,
		})
	}
}
