package auth

import (
	"errors"
	"strings"

	"github.com/JoshuaBalles/rgcs/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
)

// Burned on lookup misses so an unknown email costs the same as a wrong
// password. bcrypt hash of an unguessable throwaway string.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// NormalizeEmail is applied before every lookup and before storage, so
// uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Register creates a new user with a bcrypt-hashed password. The lookup
// before Create is a UX nicety only; the unique index on email is the
// authoritative guard, and its violation is reported as ErrDuplicateEmail.
func Register(db *gorm.DB, firstName, lastName, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a credential pair. Both failure causes return
// ErrInvalidCredential and cost one bcrypt comparison.
func Authenticate(db *gorm.DB, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}
	return &user, nil
}
