package middleware

import (
	"net/http"
	"strings"

	"pms-backend/services"
	"pms-backend/utils"

	"github.com/gin-gonic/gin"
)

// Auth validates the Bearer session token and stores the staff claims on the
// context. When roles are given, the staff member must hold one of them.
func Auth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.JSONError(c, http.StatusUnauthorized, "missing_token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := services.ParseToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid_token")
			c.Abort()
			return
		}

		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == claims.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				utils.JSONError(c, http.StatusForbidden, "forbidden")
				c.Abort()
				return
			}
		}

		c.Set("staffID", claims.StaffID)
		c.Set("propertyID", claims.PropertyID)
		c.Set("staffRole", claims.Role)
		c.Next()
	}
}
