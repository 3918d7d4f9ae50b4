package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/JoshuaBalles/rgcs/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var errFingerprintMismatch = errors.New("session fingerprint mismatch")

type SessionClaims struct {
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

// Fingerprint hashes the client characteristics a session is bound to.
// If they drift, the session is invalidated on the next request.
func Fingerprint(userAgent, ip string) string {
	sum := sha256.Sum256([]byte(userAgent + "\x00" + ip))
	return hex.EncodeToString(sum[:])
}

func GenerateToken(secret string, user *models.User, fingerprint string) (string, error) {
	claims := &SessionClaims{
		UserID:      user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		Fingerprint: fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature, expiry, and that the presenting client
// still matches the fingerprint the token was issued to.
func ParseToken(secret, tokenStr, fingerprint string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, errors.New("malformed session claims")
	}
	if subtle.ConstantTimeCompare([]byte(claims.Fingerprint), []byte(fingerprint)) != 1 {
		return nil, errFingerprintMismatch
	}
	return claims, nil
}
