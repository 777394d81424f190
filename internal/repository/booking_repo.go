package repository

import (
	"context"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
)

// BookingRepository define el acceso remoto a reservas (dat-phong).
type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, form domain.BookingForm) (domain.Booking, string, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Booking, error)
	Delete(ctx context.Context, id int) (string, error)
}

type APIBookingRepository struct {
	client *backend.Client
}

func NewAPIBookingRepository(client *backend.Client) *APIBookingRepository {
	return &APIBookingRepository{client: client}
}

func (r *APIBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	_, err := r.client.Get(ctx, "dat-phong", nil, &bookings)
	return bookings, err
}

// Create devuelve la reserva creada y el mensaje del backend.
func (r *APIBookingRepository) Create(ctx context.Context, form domain.BookingForm) (domain.Booking, string, error) {
	var booking domain.Booking
	env, err := r.client.Post(ctx, "dat-phong", form, &booking)
	if err != nil {
		return domain.Booking{}, "", err
	}
	return booking, env.Message, nil
}

func (r *APIBookingRepository) ListByUser(ctx context.Context, userID int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	_, err := r.client.Get(ctx, idPath("dat-phong/lay-theo-nguoi-dung", userID), nil, &bookings)
	return bookings, err
}

func (r *APIBookingRepository) Delete(ctx context.Context, id int) (string, error) {
	env, err := r.client.Delete(ctx, idPath("dat-phong", id), nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
