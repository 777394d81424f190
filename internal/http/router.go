package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-admin/internal/activity"
	"rental-admin/internal/backend"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	hub *activity.Hub,
	sessions SessionChecker,
	authH *AuthHandler,
	adminH *AdminHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)

	r.GET("/session/status", authH.Status)

	// La guardia corre antes que el registro de actividad: una sesion
	// vencida no se revive con la misma request.
	protected := r.Group("", SessionGuard(sessions), activityMiddleware(hub))
	protected.POST("/session/extend", authH.Extend)

	protected.GET("/rooms", adminH.ListRooms)
	protected.POST("/rooms", adminH.CreateRoom)
	protected.GET("/rooms/:id", adminH.GetRoom)
	protected.PUT("/rooms/:id", adminH.UpdateRoom)
	protected.DELETE("/rooms/:id", adminH.DeleteRoom)

	protected.GET("/locations", adminH.ListLocations)
	protected.POST("/locations", adminH.CreateLocation)
	protected.GET("/locations/:id", adminH.GetLocation)
	protected.PUT("/locations/:id", adminH.UpdateLocation)
	protected.DELETE("/locations/:id", adminH.DeleteLocation)

	protected.GET("/users", adminH.ListUsers)
	protected.POST("/users", adminH.CreateUser)
	protected.GET("/users/:id", adminH.GetUser)
	protected.PUT("/users/:id", adminH.UpdateUser)
	protected.DELETE("/users/:id", adminH.DeleteUser)

	protected.GET("/bookings", adminH.ListBookings)
	protected.POST("/bookings", adminH.CreateBooking)
	protected.GET("/bookings/user/:id", adminH.ListBookingsByUser)
	protected.DELETE("/bookings/:id", adminH.DeleteBooking)

	protected.GET("/profile", adminH.GetProfile)
	protected.PUT("/profile", adminH.UpdateProfile)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// activityMiddleware publica cada request como actividad del usuario.
func activityMiddleware(hub *activity.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub != nil {
			hub.Publish(activity.Event{Kind: activity.Request})
		}
		c.Next()
	}
}

// respondError traduce un error del backend a status y mensaje visibles.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	status := http.StatusInternalServerError
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status = http.StatusBadGateway
		if apiErr.Status >= 400 {
			status = apiErr.Status
		}
	}
	msg := backend.Message(err, fallback)
	logger.Warn("request failed", zap.String("path", c.Request.URL.Path), zap.Int("status", status), zap.Error(err))
	c.JSON(status, gin.H{"error": msg})
}
