package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"rental-admin/internal/storage"
)

func newRepo() (*Repository, *storage.MemoryStore) {
	mem := storage.NewMemoryStore()
	return NewRepository(storage.NewLenient(mem, zap.NewNop())), mem
}

func TestRepository_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	repo, mem := newRepo()

	if _, err := repo.Load(ctx); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord, got %v", err)
	}

	repo.Save(ctx, json.RawMessage(`{"id":12,"name":"Lan"}`), "tok-1")
	if !repo.Present(ctx) {
		t.Fatalf("expected record present")
	}
	rec, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !rec.IsAuthenticated || rec.AccessToken != "tok-1" || string(rec.User) != `{"id":12,"name":"Lan"}` {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if id, ok := rec.UserID(); !ok || id != 12 {
		t.Fatalf("expected user id 12, got %d,%v", id, ok)
	}

	_ = mem.Set(ctx, storage.KeyLastActivity, "1")
	repo.Clear(ctx)
	if repo.Present(ctx) || repo.AccessToken(ctx) != "" {
		t.Fatalf("expected auth keys cleared")
	}
	if _, ok, _ := mem.Get(ctx, storage.KeyLastActivity); !ok {
		t.Fatalf("clear must not touch the activity marker")
	}

	repo.Save(ctx, json.RawMessage(`{"id":12}`), "tok-2")
	repo.Purge(ctx)
	if repo.Present(ctx) {
		t.Fatalf("expected auth keys purged")
	}
	if _, ok, _ := mem.Get(ctx, storage.KeyLastActivity); ok {
		t.Fatalf("purge must remove the activity marker")
	}
}

func TestRepository_CorruptedUserClearsKeys(t *testing.T) {
	ctx := context.Background()
	repo, mem := newRepo()
	_ = mem.Set(ctx, storage.KeyAuthUser, `{"id":1,`)
	_ = mem.Set(ctx, storage.KeyAuthIsAuthenticated, "true")
	_ = mem.Set(ctx, storage.KeyAccessToken, "tok")

	if _, err := repo.Load(ctx); !errors.Is(err, ErrCorruptedRecord) {
		t.Fatalf("expected ErrCorruptedRecord, got %v", err)
	}
	for _, k := range []string{storage.KeyAuthUser, storage.KeyAuthIsAuthenticated, storage.KeyAccessToken} {
		if _, ok, _ := mem.Get(ctx, k); ok {
			t.Fatalf("expected %s cleared", k)
		}
	}
}

func TestRepository_FalseFlag(t *testing.T) {
	ctx := context.Background()
	repo, mem := newRepo()
	_ = mem.Set(ctx, storage.KeyAuthUser, `{"id":1}`)
	_ = mem.Set(ctx, storage.KeyAuthIsAuthenticated, "false")
	if _, err := repo.Load(ctx); !errors.Is(err, ErrNoRecord) {
		t.Fatalf("expected ErrNoRecord for false flag, got %v", err)
	}
}

func TestUserIDFromJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		id   int
		ok   bool
	}{
		{name: "id", in: `{"id":3}`, id: 3, ok: true},
		{name: "userId", in: `{"userId":4}`, id: 4, ok: true},
		{name: "maNguoiDung", in: `{"maNguoiDung":5}`, id: 5, ok: true},
		{name: "sin id", in: `{"name":"x"}`, ok: false},
		{name: "vacio", in: ``, ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := UserIDFromJSON(json.RawMessage(tc.in))
			if ok != tc.ok || id != tc.id {
				t.Fatalf("UserIDFromJSON(%s)=%d,%v want %d,%v", tc.in, id, ok, tc.id, tc.ok)
			}
		})
	}
}
