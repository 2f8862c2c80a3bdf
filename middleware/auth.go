package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"stayhub-backend/models"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// Auth validates a Bearer access token and injects the subject and
// role claims into the gin context. Protected handlers read them via
// UserID(c) and Role(c).
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth injects identity claims when a valid token is present
// but lets anonymous requests through. Used on endpoints that accept
// guest traffic, like booking creation.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseBearer(c, secret); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin
// role. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Role(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's id, or (0, false) for
// anonymous requests.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Role returns the authenticated role, or "" for anonymous requests.
func Role(c *gin.Context) string {
	v, ok := c.Get(ContextRole)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}

func parseBearer(c *gin.Context, secret string) (jwt.MapClaims, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok {
		c.Set(ContextUserID, uint(sub))
	}
	if role, ok := claims["role"].(string); ok {
		c.Set(ContextRole, role)
	}
}
