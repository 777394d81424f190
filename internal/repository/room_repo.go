package repository

import (
	"context"
	"net/url"
	"strconv"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
)

// RoomRepository define el acceso remoto a habitaciones (phong-thue).
type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	Page(ctx context.Context, p domain.Pagination) (backend.Page[domain.Room], error)
	Get(ctx context.Context, id int) (domain.Room, error)
	Create(ctx context.Context, form domain.RoomForm) (domain.Room, error)
	Update(ctx context.Context, id int, form domain.RoomForm) (domain.Room, error)
	Delete(ctx context.Context, id int) (string, error)
	ListByLocation(ctx context.Context, locationID int) ([]domain.Room, error)
}

// APIRoomRepository implementa RoomRepository contra el backend.
type APIRoomRepository struct {
	client *backend.Client
}

func NewAPIRoomRepository(client *backend.Client) *APIRoomRepository {
	return &APIRoomRepository{client: client}
}

func (r *APIRoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	_, err := r.client.Get(ctx, "phong-thue", nil, &rooms)
	return rooms, err
}

func (r *APIRoomRepository) Page(ctx context.Context, p domain.Pagination) (backend.Page[domain.Room], error) {
	var page backend.Page[domain.Room]
	_, err := r.client.Get(ctx, "phong-thue/phan-trang-tim-kiem", pageQuery(p), &page)
	return page, err
}

func (r *APIRoomRepository) Get(ctx context.Context, id int) (domain.Room, error) {
	var room domain.Room
	_, err := r.client.Get(ctx, idPath("phong-thue", id), nil, &room)
	return room, err
}

func (r *APIRoomRepository) Create(ctx context.Context, form domain.RoomForm) (domain.Room, error) {
	var room domain.Room
	_, err := r.client.Post(ctx, "phong-thue", form, &room)
	return room, err
}

func (r *APIRoomRepository) Update(ctx context.Context, id int, form domain.RoomForm) (domain.Room, error) {
	var room domain.Room
	_, err := r.client.Put(ctx, idPath("phong-thue", id), domain.Room{ID: id, RoomForm: form}, &room)
	return room, err
}

func (r *APIRoomRepository) Delete(ctx context.Context, id int) (string, error) {
	env, err := r.client.Delete(ctx, idPath("phong-thue", id), nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (r *APIRoomRepository) ListByLocation(ctx context.Context, locationID int) ([]domain.Room, error) {
	var rooms []domain.Room
	q := url.Values{"maViTri": {strconv.Itoa(locationID)}}
	_, err := r.client.Get(ctx, "phong-thue/lay-phong-theo-vi-tri", q, &rooms)
	return rooms, err
}
