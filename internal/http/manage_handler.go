package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-admin/internal/domain"
	"rental-admin/internal/service"
)

// GetRoom maneja GET /rooms/:id.
func (h *AdminHandler) GetRoom(c *gin.Context) {
	getByID(c, h.logger, h.rooms.Get, service.MsgGeneric)
}

// CreateRoom maneja POST /rooms.
func (h *AdminHandler) CreateRoom(c *gin.Context) {
	createFrom(c, h.logger, h.rooms.Create, service.MsgRoomCreate, service.MsgRoomCreated)
}

// UpdateRoom maneja PUT /rooms/:id.
func (h *AdminHandler) UpdateRoom(c *gin.Context) {
	updateFrom(c, h.logger, h.rooms.Update, service.MsgRoomUpdate, service.MsgRoomUpdated)
}

// DeleteRoom maneja DELETE /rooms/:id.
func (h *AdminHandler) DeleteRoom(c *gin.Context) {
	deleteByID(c, h.logger, h.rooms.Delete, service.MsgRoomDelete)
}

func (h *AdminHandler) GetLocation(c *gin.Context) {
	getByID(c, h.logger, h.locations.Get, service.MsgGeneric)
}

func (h *AdminHandler) CreateLocation(c *gin.Context) {
	createFrom(c, h.logger, h.locations.Create, service.MsgGeneric, service.MsgLocationCreated)
}

func (h *AdminHandler) UpdateLocation(c *gin.Context) {
	update := func(ctx context.Context, id int, form domain.LocationForm) (domain.Location, error) {
		return h.locations.Update(ctx, domain.Location{ID: id, LocationForm: form})
	}
	updateFrom(c, h.logger, update, service.MsgGeneric, service.MsgLocationUpdated)
}

func (h *AdminHandler) DeleteLocation(c *gin.Context) {
	deleteByID(c, h.logger, h.locations.Delete, service.MsgGeneric)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	getByID(c, h.logger, h.users.Get, service.MsgGeneric)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	createFrom(c, h.logger, h.users.Create, service.MsgGeneric, service.MsgUserCreated)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	update := func(ctx context.Context, id int, form domain.UserForm) (domain.User, error) {
		return h.users.Update(ctx, domain.User{ID: id, UserForm: form})
	}
	updateFrom(c, h.logger, update, service.MsgGeneric, service.MsgUserUpdated)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	deleteByID(c, h.logger, h.users.Delete, service.MsgGeneric)
}

// ListBookings maneja GET /bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	listAll(c, h.logger, h.bookings.List, service.MsgBookingsFailed)
}

// CreateBooking maneja POST /bookings. El mensaje del backend tiene prioridad.
func (h *AdminHandler) CreateBooking(c *gin.Context) {
	var form domain.BookingForm
	if !bindForm(c, h.logger, &form) {
		return
	}
	booking, msg, err := h.bookings.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, h.logger, err, service.MsgBookRoom)
		return
	}
	if msg == "" {
		msg = service.MsgBooked
	}
	c.JSON(http.StatusCreated, gin.H{"data": booking, "message": msg})
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	deleteByID(c, h.logger, h.bookings.Delete, service.MsgGeneric)
}

func bindForm(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("invalid form request", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}

func getByID[T any](c *gin.Context, logger *zap.Logger, get func(context.Context, int) (T, error), fallback string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := get(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

func createFrom[F, T any](
	c *gin.Context,
	logger *zap.Logger,
	create func(context.Context, F) (T, error),
	fallback, success string,
) {
	var form F
	if !bindForm(c, logger, &form) {
		return
	}
	item, err := create(c.Request.Context(), form)
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": item, "message": success})
}

func updateFrom[F, T any](
	c *gin.Context,
	logger *zap.Logger,
	update func(context.Context, int, F) (T, error),
	fallback, success string,
) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form F
	if !bindForm(c, logger, &form) {
		return
	}
	item, err := update(c.Request.Context(), id, form)
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item, "message": success})
}

// deleteByID responde con el mensaje del backend o con el generico de exito.
func deleteByID(c *gin.Context, logger *zap.Logger, del func(context.Context, int) (string, error), fallback string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	msg, err := del(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	if msg == "" {
		msg = service.MsgDeleted
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
