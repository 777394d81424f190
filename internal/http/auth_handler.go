package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-admin/internal/service"
)

// AuthService es lo que el gateway usa del servicio de autenticacion.
type AuthService interface {
	Login(ctx context.Context, email, password string) (json.RawMessage, error)
	Logout(ctx context.Context)
	Session(ctx context.Context) service.SessionInfo
}

// AuthHandler mantiene dependencias para login, logout y estado de sesion.
type AuthHandler struct {
	logger   *zap.Logger
	auth     AuthService
	sessions SessionChecker
}

func NewAuthHandler(logger *zap.Logger, auth AuthService, sessions SessionChecker) *AuthHandler {
	return &AuthHandler{logger: logger, auth: auth, sessions: sessions}
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, service.MsgLoginFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Status maneja GET /session/status. No cuenta como actividad.
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.Session(c.Request.Context()))
}

// Extend maneja POST /session/extend.
func (h *AuthHandler) Extend(c *gin.Context) {
	h.sessions.ExtendSession()
	c.JSON(http.StatusOK, h.auth.Session(c.Request.Context()))
}
