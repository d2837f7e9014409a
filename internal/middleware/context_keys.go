package middleware

import (
	"github.com/finportal/invoice_finance_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated caller's identity
// string in the request context.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the authenticated caller's resolved role.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated caller identity from the
// Gin context. It returns the identity and a boolean indicating if it was
// found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the authenticated caller role from the Gin
// context. It returns the role and a boolean indicating if it was found and
// is one of the three known roles.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	roleVal := c.Request.Context().Value(roleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(domain.Role)
	if !ok || !role.Valid() {
		return "", false
	}
	return role, true
}
