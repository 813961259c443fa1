package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDFromContext reads the authenticated user id stored by the auth
// middleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	return userID, ok
}
