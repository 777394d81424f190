package repository

import (
	"context"

	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
)

// ProfileRepository lee y actualiza el perfil del usuario autenticado.
type ProfileRepository interface {
	FindByID(ctx context.Context, id int) (domain.Profile, error)
	Update(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

// profileWire acepta los alias que devuelven distintas versiones del backend.
type profileWire struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	HoTen     string `json:"hoTen"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	SoDT      string `json:"soDT"`
	Birthday  string `json:"birthday"`
	Avatar    string `json:"avatar"`
	AvatarURL string `json:"avatarUrl"`
	Gender    *bool  `json:"gender"`
	CreatedAt string `json:"createdAt"`
}

func (w profileWire) toDomain(fallbackID int) domain.Profile {
	p := domain.Profile{
		ID:        w.ID,
		Name:      firstNonEmpty(w.Name, w.HoTen),
		Email:     w.Email,
		Password:  w.Password,
		Phone:     firstNonEmpty(w.Phone, w.SoDT),
		Birthday:  w.Birthday,
		Avatar:    firstNonEmpty(w.Avatar, w.AvatarURL),
		Gender:    w.Gender,
		CreatedAt: w.CreatedAt,
	}
	if p.ID == 0 {
		p.ID = fallbackID
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type APIProfileRepository struct {
	client *backend.Client
}

func NewAPIProfileRepository(client *backend.Client) *APIProfileRepository {
	return &APIProfileRepository{client: client}
}

// FindByID lista los usuarios y elige el del id pedido. Si no aparece
// devuelve un perfil vacio con ese id.
func (r *APIProfileRepository) FindByID(ctx context.Context, id int) (domain.Profile, error) {
	var users []profileWire
	if _, err := r.client.Get(ctx, "users", nil, &users); err != nil {
		return domain.Profile{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u.toDomain(id), nil
		}
	}
	return domain.Profile{ID: id}, nil
}

func (r *APIProfileRepository) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	var updated profileWire
	if _, err := r.client.Put(ctx, idPath("users", profile.ID), profile, &updated); err != nil {
		return domain.Profile{}, err
	}
	return updated.toDomain(profile.ID), nil
}
