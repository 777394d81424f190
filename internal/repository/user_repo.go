package repository

import (
	"context"
	"net/url"
	"strconv"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
)

// UserRepository define el acceso remoto a usuarios.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Page(ctx context.Context, p domain.Pagination) (backend.Page[domain.User], error)
	Get(ctx context.Context, id int) (domain.User, error)
	Create(ctx context.Context, form domain.UserForm) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id int) (string, error)
	Search(ctx context.Context, name string) ([]domain.User, error)
}

type APIUserRepository struct {
	client *backend.Client
}

func NewAPIUserRepository(client *backend.Client) *APIUserRepository {
	return &APIUserRepository{client: client}
}

func (r *APIUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	_, err := r.client.Get(ctx, "users", nil, &users)
	return users, err
}

func (r *APIUserRepository) Page(ctx context.Context, p domain.Pagination) (backend.Page[domain.User], error) {
	var page backend.Page[domain.User]
	_, err := r.client.Get(ctx, "users/phan-trang-tim-kiem", pageQuery(p), &page)
	return page, err
}

func (r *APIUserRepository) Get(ctx context.Context, id int) (domain.User, error) {
	var user domain.User
	_, err := r.client.Get(ctx, idPath("users", id), nil, &user)
	return user, err
}

func (r *APIUserRepository) Create(ctx context.Context, form domain.UserForm) (domain.User, error) {
	var user domain.User
	_, err := r.client.Post(ctx, "users", form, &user)
	return user, err
}

func (r *APIUserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	var updated domain.User
	_, err := r.client.Put(ctx, idPath("users", user.ID), user, &updated)
	return updated, err
}

// Delete usa el query param id, no un segmento de path.
func (r *APIUserRepository) Delete(ctx context.Context, id int) (string, error) {
	env, err := r.client.Delete(ctx, "users", url.Values{"id": {strconv.Itoa(id)}}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (r *APIUserRepository) Search(ctx context.Context, name string) ([]domain.User, error) {
	var users []domain.User
	_, err := r.client.Get(ctx, "users/search/"+url.PathEscape(name), nil, &users)
	return users, err
}
