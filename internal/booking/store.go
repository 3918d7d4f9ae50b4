package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JoshuaBalles/rgcs/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("booking not found")

// ValidationError names the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Form carries the raw booking submission. Everything arrives as text
// and is parsed here.
type Form struct {
	FullName      string `json:"full_name" form:"full_name"`
	MobileNumber  string `json:"mobile_number" form:"mobile_number"`
	StreetAddress string `json:"street_address" form:"street_address"`
	City          string `json:"city" form:"city"`
	RoomSize      string `json:"room_size" form:"room_size"`
	TypeOfService string `json:"type_of_service" form:"type_of_service"`
	AddlServices  string `json:"addl_services" form:"addl_services"`
	SelectedDate  string `json:"selected_date" form:"selected_date"`
	SelectedTime  string `json:"selected_time" form:"selected_time"`
}

// Submit validates the form and persists an unconfirmed booking owned by
// ownerID.
func Submit(db *gorm.DB, ownerID uint, f Form) (*models.Service, error) {
	required := []struct{ field, value string }{
		{"full_name", f.FullName},
		{"mobile_number", f.MobileNumber},
		{"street_address", f.StreetAddress},
		{"city", f.City},
		{"room_size", f.RoomSize},
		{"type_of_service", f.TypeOfService},
		{"selected_date", f.SelectedDate},
		{"selected_time", f.SelectedTime},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &ValidationError{Field: r.field, Reason: "is required"}
		}
	}

	roomSize, err := strconv.ParseFloat(strings.TrimSpace(f.RoomSize), 64)
	if err != nil || roomSize < 0 {
		return nil, &ValidationError{Field: "room_size", Reason: "must be a non-negative number"}
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(f.SelectedDate))
	if err != nil {
		return nil, &ValidationError{Field: "selected_date", Reason: "must be a date (YYYY-MM-DD)"}
	}

	clock, err := parseClock(strings.TrimSpace(f.SelectedTime))
	if err != nil {
		return nil, &ValidationError{Field: "selected_time", Reason: "must be a time (HH:MM)"}
	}

	svc := models.Service{
		UserID:        ownerID,
		FullName:      strings.TrimSpace(f.FullName),
		MobileNumber:  strings.TrimSpace(f.MobileNumber),
		StreetAddress: strings.TrimSpace(f.StreetAddress),
		City:          strings.TrimSpace(f.City),
		RoomSize:      roomSize,
		TypeOfService: strings.TrimSpace(f.TypeOfService),
		AddlServices:  strings.TrimSpace(f.AddlServices),
		SelectedDate:  date,
		SelectedTime:  clock,
		Confirmed:     false,
	}
	if err := db.Create(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// parseClock accepts "HH:MM" or "HH:MM:SS" and keeps the zero-padded
// "HH:MM" form, whose lexical order is clock order.
func parseClock(s string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}

// ListOwn returns the caller's bookings in insertion order.
func ListOwn(db *gorm.DB, ownerID uint) ([]models.Service, error) {
	var list []models.Service
	if err := db.Where("user_id = ?", ownerID).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll returns every booking for the review screen. sortKey is "id"
// or "date" (date sorts by date then time); direction is "asc" or
// "desc". Anything unrecognized falls back to date DESC, time DESC.
func ListAll(db *gorm.DB, sortKey, direction string) ([]models.Service, error) {
	dir := "ASC"
	if direction == "desc" {
		dir = "DESC"
	}

	var order string
	switch sortKey {
	case "id":
		order = "id " + dir
	case "date":
		order = fmt.Sprintf("selected_date %s, selected_time %s", dir, dir)
	default:
		order = "selected_date DESC, selected_time DESC"
	}

	var list []models.Service
	if err := db.Order(order).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns a single booking by id.
func Get(db *gorm.DB, id uint) (*models.Service, error) {
	var svc models.Service
	if err := db.First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// SetConfirmed flips the one post-creation mutable field. The store is
// untouched when no row matches.
func SetConfirmed(db *gorm.DB, id uint, value bool) error {
	res := db.Model(&models.Service{}).Where("id = ?", id).Update("confirmed", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
