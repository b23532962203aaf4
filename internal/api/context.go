package api

import (
	"vending_system/internal/middleware"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the authenticated user's ID placed in the request
// context by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
