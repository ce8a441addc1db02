package middleware

import "github.com/gin-gonic/gin"

const (
	tenantIDKey = contextKey("tenantID")
	actorIDKey  = contextKey("actorID")
)

// GetTenantIDFromContext retrieves the tenant ID set by IdentityMiddleware.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := val.(string)
	return tenantID, ok
}

// GetActorIDFromContext retrieves the acting user ID set by IdentityMiddleware.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := val.(string)
	return actorID, ok
}
