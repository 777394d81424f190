package repository

import (
	"context"
	"encoding/json"

	"rental-admin/internal/backend"
)

// SignInResult es el content de auth/signin.
type SignInResult struct {
	User  json.RawMessage `json:"user"`
	Token string          `json:"token"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthRepository autentica contra el backend.
type AuthRepository interface {
	SignIn(ctx context.Context, creds Credentials) (SignInResult, error)
}

type APIAuthRepository struct {
	client *backend.Client
}

func NewAPIAuthRepository(client *backend.Client) *APIAuthRepository {
	return &APIAuthRepository{client: client}
}

func (r *APIAuthRepository) SignIn(ctx context.Context, creds Credentials) (SignInResult, error) {
	var res SignInResult
	_, err := r.client.Post(ctx, "auth/signin", creds, &res)
	return res, err
}
