package middleware

import (
	"context"
	"net/http"
	"strings"

	"food-ordering-backend/helpers"
	"food-ordering-backend/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware chain.
const (
	ContextAuthID = "auth0_id"
	ContextEmail  = "email"
	ContextUserID = "user_id"
)

type UserFinder interface {
	FindByAuthID(ctx context.Context, auth0ID string) (*models.User, error)
}

// Authentication validates the bearer token and stashes its subject id and
// email on the request context. It does not touch the user store; routes
// that need the internal user record chain ParseUser after it.
func Authentication(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorization := c.GetHeader("Authorization")
		if authorization == "" || !strings.HasPrefix(authorization, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}
		clientToken := strings.TrimPrefix(authorization, "Bearer ")

		claims, err := helpers.ValidateToken(clientToken, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set(ContextAuthID, claims.Subject)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// ParseUser maps the token subject to an internal user record, failing
// closed with 401 when no mapping exists.
func ParseUser(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth0ID := c.GetString(ContextAuthID)
		if auth0ID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token subject"})
			c.Abort()
			return
		}
		user, err := users.FindByAuthID(c.Request.Context(), auth0ID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user is not registered"})
			c.Abort()
			return
		}
		c.Set(ContextUserID, user.ID.Hex())
		c.Next()
	}
}
