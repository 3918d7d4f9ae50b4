package models

import "time"

// Service is a booking: one user's request for a scheduled cleaning.
// Confirmed is the only field that changes after creation, and only the
// admin workflow changes it.
type Service struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"index;not null"`
	User          User
	FullName      string    `gorm:"size:100;not null"`
	MobileNumber  string    `gorm:"size:50;not null"`
	StreetAddress string    `gorm:"size:255;not null"`
	City          string    `gorm:"size:100;not null"`
	RoomSize      float64   `gorm:"type:numeric(10,2);not null"`
	TypeOfService string    `gorm:"size:100;not null"`
	AddlServices  string    `gorm:"size:255"`
	SelectedDate  time.Time `gorm:"type:date;not null"`
	// Zero-padded "HH:MM" so lexical order matches clock order.
	SelectedTime string `gorm:"size:5;not null"`
	Confirmed    bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
