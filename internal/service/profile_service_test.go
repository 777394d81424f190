package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"rental-admin/internal/auth"
	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
	"rental-admin/internal/state"
	"rental-admin/internal/storage"
)

type mockProfileRepo struct {
	profile domain.Profile
	err     error
	findID  int
	updated domain.Profile
}

func (m *mockProfileRepo) FindByID(_ context.Context, id int) (domain.Profile, error) {
	m.findID = id
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	p := m.profile
	p.ID = id
	return p, nil
}

func (m *mockProfileRepo) Update(_ context.Context, p domain.Profile) (domain.Profile, error) {
	m.updated = p
	return p, m.err
}

type staticLogin state.LoginState

func (s staticLogin) Login() state.LoginState { return state.LoginState(s) }

func newRecords() *auth.Repository {
	return auth.NewRepository(storage.NewLenient(storage.NewMemoryStore(), zap.NewNop()))
}

func TestProfileService_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("id desde el slice de login", func(t *testing.T) {
		repo := &mockProfileRepo{profile: domain.Profile{Name: "Lan"}}
		login := staticLogin{User: json.RawMessage(`{"userId":9,"email":"lan@x.vn"}`), IsAuthenticated: true}
		svc := NewProfileService(zap.NewNop(), repo, login, newRecords())

		p, err := svc.Fetch(ctx)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if repo.findID != 9 || p.Email != "lan@x.vn" || p.Name != "Lan" {
			t.Fatalf("unexpected profile %+v (id %d)", p, repo.findID)
		}
	})

	t.Run("id desde auth_user guardado", func(t *testing.T) {
		records := newRecords()
		records.Save(ctx, json.RawMessage(`{"maNguoiDung":"15"}`), "tok")
		repo := &mockProfileRepo{}
		svc := NewProfileService(zap.NewNop(), repo, staticLogin{}, records)

		if _, err := svc.Fetch(ctx); err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if repo.findID != 15 {
			t.Fatalf("expected id 15, got %d", repo.findID)
		}
	})

	t.Run("sin id no esta logueado", func(t *testing.T) {
		svc := NewProfileService(zap.NewNop(), &mockProfileRepo{}, staticLogin{}, newRecords())
		_, err := svc.Fetch(ctx)
		if !errors.Is(err, ErrNotLoggedIn) {
			t.Fatalf("expected ErrNotLoggedIn, got %v", err)
		}
		if got := backend.Message(err, MsgProfileLoad); got != MsgNotLoggedIn {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("error del backend", func(t *testing.T) {
		repo := &mockProfileRepo{err: &backend.APIError{Status: 500}}
		login := staticLogin{User: json.RawMessage(`{"id":1}`)}
		svc := NewProfileService(zap.NewNop(), repo, login, newRecords())
		_, err := svc.Fetch(ctx)
		if got := backend.Message(err, MsgProfileLoad); got != MsgProfileLoad {
			t.Fatalf("unexpected message %q", got)
		}
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	repo := &mockProfileRepo{}
	login := staticLogin{User: json.RawMessage(`{"id":4}`)}
	svc := NewProfileService(zap.NewNop(), repo, login, newRecords())

	p, err := svc.Update(ctx, domain.Profile{Name: "Nuevo"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updated.ID != 4 || p.Name != "Nuevo" {
		t.Fatalf("unexpected update %+v", repo.updated)
	}

	svc = NewProfileService(zap.NewNop(), repo, staticLogin{}, newRecords())
	if _, err := svc.Update(ctx, domain.Profile{Name: "x"}); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}
