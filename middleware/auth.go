package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/services"
)

// Context keys set by the auth middleware
const (
	ContextPrincipalID   = "principal_id"
	ContextPrincipalType = "principal_type"
)

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// requirePrincipal verifies the bearer token and checks the principal kind
func requirePrincipal(userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header with bearer token is required",
			})
			c.Abort()
			return
		}

		tokens := services.NewTokenService(config.GetConfig())
		id, kind, err := tokens.Verify(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Failed to validate token",
			})
			c.Abort()
			return
		}

		if kind != userType {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Insufficient permissions to access this resource",
			})
			c.Abort()
			return
		}

		c.Set(ContextPrincipalID, id)
		c.Set(ContextPrincipalType, kind)
		c.Next()
	}
}

// AuthUser requires a valid customer token
func AuthUser() gin.HandlerFunc {
	return requirePrincipal(services.PrincipalUser)
}

// AuthDesigner requires a valid designer token
func AuthDesigner() gin.HandlerFunc {
	return requirePrincipal(services.PrincipalDesigner)
}

// AuthAdmin requires a valid admin token
func AuthAdmin() gin.HandlerFunc {
	return requirePrincipal(services.PrincipalAdmin)
}

// GetPrincipalID extracts the authenticated principal's id from the Gin context
func GetPrincipalID(c *gin.Context) (uint, error) {
	id, exists := c.Get(ContextPrincipalID)
	if !exists {
		return 0, &AuthError{Code: "MISSING_PRINCIPAL", Message: "Principal not found in context"}
	}

	idUint, ok := id.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_PRINCIPAL", Message: "Principal id is not valid"}
	}

	return idUint, nil
}
