package storage

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type failingStore struct {
	err     error
	sets    int
	deletes int
}

func (f *failingStore) Get(context.Context, string) (string, bool, error) {
	return "stale", true, f.err
}

func (f *failingStore) Set(context.Context, string, string) error {
	f.sets++
	return f.err
}

func (f *failingStore) Delete(context.Context, ...string) error {
	f.deletes++
	return f.err
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key false,nil; got %v,%v", ok, err)
	}
	if err := s.Set(ctx, KeyLastActivity, "1700000000000"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set(ctx, KeyLastActivity, "1700000000500"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	v, ok, err := s.Get(ctx, KeyLastActivity)
	if err != nil || !ok || v != "1700000000500" {
		t.Fatalf("expected overwritten value, got %q,%v,%v", v, ok, err)
	}
	if err := s.Set(ctx, KeyAccessToken, "tok"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Delete(ctx, KeyLastActivity, KeyAccessToken, "never-set"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyAccessToken); ok {
		t.Fatalf("expected key deleted")
	}
	if err := s.Set(ctx, "  ", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestLenient(t *testing.T) {
	ctx := context.Background()

	t.Run("errores se tratan como ausencia", func(t *testing.T) {
		fs := &failingStore{err: errors.New("quota exceeded")}
		l := NewLenient(fs, zap.NewNop())
		if got := l.Get(ctx, KeyLastActivity); got != "" {
			t.Fatalf("expected empty value on read fault, got %q", got)
		}
		l.Set(ctx, KeyLastActivity, "1")
		l.Delete(ctx, KeyLastActivity)
		if fs.sets != 1 || fs.deletes != 1 {
			t.Fatalf("expected calls forwarded, got sets=%d deletes=%d", fs.sets, fs.deletes)
		}
	})

	t.Run("sin errores delega", func(t *testing.T) {
		l := NewLenient(NewMemoryStore(), nil)
		l.Set(ctx, KeyAuthIsAuthenticated, "true")
		if got := l.Get(ctx, KeyAuthIsAuthenticated); got != "true" {
			t.Fatalf("expected value, got %q", got)
		}
		l.Delete(ctx, KeyAuthIsAuthenticated)
		if got := l.Get(ctx, KeyAuthIsAuthenticated); got != "" {
			t.Fatalf("expected deleted, got %q", got)
		}
	})

	t.Run("nil receiver", func(t *testing.T) {
		var l *Lenient
		if got := l.Get(ctx, "k"); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
		l.Set(ctx, "k", "v")
		l.Delete(ctx, "k")
	})
}
