package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
	"rental-admin/internal/repository"
	"rental-admin/internal/service"
)

// ProfileService es lo que el gateway usa del servicio de perfil.
type ProfileService interface {
	Fetch(ctx context.Context) (domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

// AdminHandler expone las vistas de lista y el perfil de la consola.
type AdminHandler struct {
	logger    *zap.Logger
	rooms     repository.RoomRepository
	locations repository.LocationRepository
	users     repository.UserRepository
	bookings  repository.BookingRepository
	profiles  ProfileService
}

func NewAdminHandler(
	logger *zap.Logger,
	rooms repository.RoomRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
	bookings repository.BookingRepository,
	profiles ProfileService,
) *AdminHandler {
	return &AdminHandler{
		logger:    logger,
		rooms:     rooms,
		locations: locations,
		users:     users,
		bookings:  bookings,
		profiles:  profiles,
	}
}

// ListRooms maneja GET /rooms. Con maViTri lista por ubicacion, con all=true
// devuelve el listado completo y si no pagina.
func (h *AdminHandler) ListRooms(c *gin.Context) {
	if raw := c.Query("maViTri"); raw != "" {
		locationID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maViTri"})
			return
		}
		rooms, err := h.rooms.ListByLocation(c.Request.Context(), locationID)
		if err != nil {
			respondError(c, h.logger, err, service.MsgRoomsFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": rooms})
		return
	}
	if wantsAll(c) {
		listAll(c, h.logger, h.rooms.List, service.MsgRoomsFailed)
		return
	}
	listPage(c, h.logger, h.rooms.Page, service.MsgRoomsFailed)
}

// ListLocations maneja GET /locations.
func (h *AdminHandler) ListLocations(c *gin.Context) {
	if wantsAll(c) {
		listAll(c, h.logger, h.locations.List, service.MsgLocationsFailed)
		return
	}
	listPage(c, h.logger, h.locations.Page, service.MsgLocationsFailed)
}

// ListUsers maneja GET /users. Con name busca por nombre.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		users, err := h.users.Search(c.Request.Context(), name)
		if err != nil {
			respondError(c, h.logger, err, service.MsgUsersFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": users})
		return
	}
	if wantsAll(c) {
		listAll(c, h.logger, h.users.List, service.MsgUsersFailed)
		return
	}
	listPage(c, h.logger, h.users.Page, service.MsgUsersFailed)
}

// ListBookingsByUser maneja GET /bookings/user/:id.
func (h *AdminHandler) ListBookingsByUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	bookings, err := h.bookings.ListByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, service.MsgBookingsFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// GetProfile maneja GET /profile.
func (h *AdminHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Fetch(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, service.MsgProfileLoad)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile maneja PUT /profile.
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	profile, err := h.profiles.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, service.MsgProfileUpdate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// listPage resuelve pageIndex, pageSize y keyword, consulta la pagina y
// devuelve los datos junto con el paginado recalculado.
func listPage[T any](
	c *gin.Context,
	logger *zap.Logger,
	fetch func(context.Context, domain.Pagination) (backend.Page[T], error),
	fallback string,
) {
	state := service.NewListState()
	if size, err := strconv.Atoi(c.Query("pageSize")); err == nil {
		state.SetPageSize(size)
	}
	pageIndex := 1
	if idx, err := strconv.Atoi(c.Query("pageIndex")); err == nil {
		pageIndex = idx
	}
	state.SetPage(pageIndex, strings.TrimSpace(c.Query("keyword")))

	page, err := fetch(c.Request.Context(), state.Params())
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	data := page.Data
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "pagination": state.Apply(page.TotalRow)})
}

// listAll devuelve el listado completo sin paginar.
func listAll[T any](c *gin.Context, logger *zap.Logger, fetch func(context.Context) ([]T, error), fallback string) {
	items, err := fetch(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func wantsAll(c *gin.Context) bool {
	all, _ := strconv.ParseBool(c.Query("all"))
	return all
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
