package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"retail-hub/models"
)

const principalKey = "principal"

// Authenticator turns a bearer token into a Principal.
type Authenticator interface {
	Authenticate(token string) (models.Principal, error)
}

func abort(c *gin.Context, status int, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}

// AuthMiddleware resolves the bearer token into a Principal and stores it on
// the context for GetPrincipal.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}

		principal, err := auth.Authenticate(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		switch {
		case !exists:
			abort(c, http.StatusForbidden, "User role not found", nil)
		case !principal.IsAdmin:
			abort(c, http.StatusForbidden, "Access denied. Admin role required", nil)
		default:
			c.Next()
		}
	}
}

// GetPrincipal returns the Principal stored by AuthMiddleware.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}
