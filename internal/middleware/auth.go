// Package middleware holds the HTTP middleware stack: bearer-token
// authentication, request logging, metrics and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mehulj/noteshare/internal/auth"
)

const (
	userIDKey = "user_id"
	emailKey  = "email"
)

// UserID returns the authenticated user's ID from the request context, or
// "" before RequireAuth has run.
func UserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}

// Email returns the authenticated user's email from the request context.
func Email(c *gin.Context) string {
	v, _ := c.Get(emailKey)
	s, _ := v.(string)
	return s
}

// RequireAuth validates the Bearer token and stores the resolved identity
// in the request context. Requests without a valid token are rejected
// with 401 before any handler runs.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": auth.ErrMissingToken.Error()})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}
