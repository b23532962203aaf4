package middleware

import (
	"net/http"                      // HTTP status codes
	"strings"                       // Header parsing
	"vending_system/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by AuthRequired for downstream handlers
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthRequired validates the bearer token and enforces that the caller holds
// one of the given roles. On success the authenticated user ID and role are
// stored in the request context; handlers never read identity from the body.
func AuthRequired(secret string, roles ...string) gin.HandlerFunc {
	// Membership check, not equality: several routes accept either role
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		// The header must be exactly "Bearer <token>": two fields, no more
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be Bearer followed by a token"})
			return
		}
		claims, err := utils.ParseJWT(parts[1], secret)
		if err != nil {
			// One categorical message for bad signature, malformed and expired
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User does not have the required role"})
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store authenticated identity in context
		c.Set(ContextRole, claims.Role)
		c.Next() // Proceed to the wrapped handler
	}
}
