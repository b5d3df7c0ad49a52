package middleware

import (
	"net/http"
	"strings"

	"clinicrecord-backend/internal/models"
	"clinicrecord-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const callerKey = "caller"

// AuthMiddleware validates the bearer token and stores an explicit
// models.Caller in the context. Role checks happen inside the service
// operations against that caller, not in routing.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Missing authentication token", nil)
			c.Abort()
			return
		}

		// expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Malformed authorization header", nil)
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(parts[1])
		if err != nil || !token.Valid {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Unreadable token claims", nil)
			c.Abort()
			return
		}

		// JWT numbers decode as float64
		var caller models.Caller
		if val, ok := claims["user_id"].(float64); ok {
			caller.ID = uint64(val)
		}
		if val, ok := claims["is_doctor"].(bool); ok {
			caller.IsDoctor = val
		}
		if val, ok := claims["is_patient"].(bool); ok {
			caller.IsPatient = val
		}
		if caller.ID == 0 {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid token subject", nil)
			c.Abort()
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// CallerFrom pulls the authenticated caller out of the gin context.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	val, exists := c.Get(callerKey)
	if !exists {
		return models.Caller{}, false
	}
	caller, ok := val.(models.Caller)
	return caller, ok
}
