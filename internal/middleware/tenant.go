package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantGuard rejects requests that reach tenant-scoped routes without a usable tenant id.
// It runs after AuthMiddleware; every report and catalog query is keyed by this id.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetTenantID(c); err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		c.Next()
	}
}
