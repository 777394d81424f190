package repository

import (
	"context"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
)

// LocationRepository define el acceso remoto a ubicaciones (vi-tri).
type LocationRepository interface {
	List(ctx context.Context) ([]domain.Location, error)
	Page(ctx context.Context, p domain.Pagination) (backend.Page[domain.Location], error)
	Get(ctx context.Context, id int) (domain.Location, error)
	Create(ctx context.Context, form domain.LocationForm) (domain.Location, error)
	Update(ctx context.Context, loc domain.Location) (domain.Location, error)
	Delete(ctx context.Context, id int) (string, error)
}

type APILocationRepository struct {
	client *backend.Client
}

func NewAPILocationRepository(client *backend.Client) *APILocationRepository {
	return &APILocationRepository{client: client}
}

func (r *APILocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	var locs []domain.Location
	_, err := r.client.Get(ctx, "vi-tri", nil, &locs)
	return locs, err
}

func (r *APILocationRepository) Page(ctx context.Context, p domain.Pagination) (backend.Page[domain.Location], error) {
	var page backend.Page[domain.Location]
	_, err := r.client.Get(ctx, "vi-tri/phan-trang-tim-kiem", pageQuery(p), &page)
	return page, err
}

func (r *APILocationRepository) Get(ctx context.Context, id int) (domain.Location, error) {
	var loc domain.Location
	_, err := r.client.Get(ctx, idPath("vi-tri", id), nil, &loc)
	return loc, err
}

func (r *APILocationRepository) Create(ctx context.Context, form domain.LocationForm) (domain.Location, error) {
	var loc domain.Location
	_, err := r.client.Post(ctx, "vi-tri", form, &loc)
	return loc, err
}

func (r *APILocationRepository) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	var updated domain.Location
	_, err := r.client.Put(ctx, idPath("vi-tri", loc.ID), loc, &updated)
	return updated, err
}

func (r *APILocationRepository) Delete(ctx context.Context, id int) (string, error) {
	env, err := r.client.Delete(ctx, idPath("vi-tri", id), nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
