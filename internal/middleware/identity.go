package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantHeader = "X-Tenant-ID"
	actorHeader  = "X-Actor-ID"
)

// IdentityMiddleware extracts the tenant and actor identity from request
// headers. Authentication itself happens upstream (gateway/session layer);
// this shim only requires that the identity headers arrived.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(tenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + tenantHeader + " header"})
			return
		}
		actorID := c.GetHeader(actorHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}

		c.Set(string(tenantIDKey), tenantID)
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}
