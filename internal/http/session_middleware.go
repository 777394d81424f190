package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-admin/internal/backend"
	"rental-admin/internal/service"
)

// SessionChecker es la vista del monitor que necesita el gateway.
type SessionChecker interface {
	IsAuthenticated() bool
	IsSessionValid() bool
	ExtendSession()
}

// SessionGuard rechaza con 401 las requests sin sesion o con la sesion vencida.
func SessionGuard(sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session monitor not configured"})
			c.Abort()
			return
		}
		if !sessions.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.MsgNotLoggedIn})
			c.Abort()
			return
		}
		if !sessions.IsSessionValid() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": backend.MsgUnauthorized})
			c.Abort()
			return
		}
		c.Next()
	}
}
