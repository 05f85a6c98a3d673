package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vatledger/internal/auth"
	"vatledger/internal/domain"
)

// Context keys set by AuthMiddleware.
const (
	ContextKeyTenantID = "tenant_id"
	ContextKeyUserID   = "user_id"
	ContextKeyEmail    = "email"
	ContextKeyRole     = "role"
)

// abort writes the error half of the handler package's response envelope.
func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}

// bearerToken returns the credentials of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware verifies the bearer token and puts the caller's tenant, user and role
// into the request context.
func AuthMiddleware(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role := domain.UserRole(GetRole(c))
		switch {
		case role == "":
			abort(c, http.StatusForbidden, "FORBIDDEN", "role not found in context")
		case !allowed[role]:
			abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
		default:
			c.Next()
		}
	}
}

// GetTenantID returns the caller's tenant, or ErrUnauthorized when none is set.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	return uuidFromContext(c, ContextKeyTenantID)
}

// GetUserID returns the caller's user id.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	return uuidFromContext(c, ContextKeyUserID)
}

func uuidFromContext(c *gin.Context, key string) (uuid.UUID, error) {
	id, ok := c.Value(key).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// GetRole returns the caller's role, or "" when unauthenticated.
func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}
