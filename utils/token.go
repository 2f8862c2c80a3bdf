package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewAccessToken builds and signs an HS256 JWT carrying the user id
// (sub) and role claims.
func NewAccessToken(secret string, userID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
