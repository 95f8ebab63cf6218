package api

import (
	"net/http"
	"strings"

	"github.com/DERICHRIS/immantravels/internal/service/admin"
	"github.com/gin-gonic/gin"
)

// AdminAuth gates admin routes behind the session token issued by login.
func AdminAuth(service admin.AdminUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		if err := service.VerifyToken(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}
