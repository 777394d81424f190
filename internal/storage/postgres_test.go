package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type mockRow struct {
	value string
	err   error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type mockPgQuerier struct {
	row       mockRow
	execErr   error
	lastSQL   string
	lastArgs  []any
	execCalls int
}

func (m *mockPgQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.execCalls++
	m.lastSQL = sql
	m.lastArgs = args
	return pgconn.CommandTag{}, m.execErr
}

func (m *mockPgQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	m.lastArgs = args
	return m.row
}

func TestPgStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get existente", func(t *testing.T) {
		q := &mockPgQuerier{row: mockRow{value: "true"}}
		s := &PgStore{pool: q}
		v, ok, err := s.Get(ctx, KeyAuthIsAuthenticated)
		if err != nil || !ok || v != "true" {
			t.Fatalf("expected value, got %q,%v,%v", v, ok, err)
		}
		if len(q.lastArgs) != 1 || q.lastArgs[0] != KeyAuthIsAuthenticated {
			t.Fatalf("unexpected args: %+v", q.lastArgs)
		}
	})

	t.Run("get sin filas", func(t *testing.T) {
		s := &PgStore{pool: &mockPgQuerier{row: mockRow{err: pgx.ErrNoRows}}}
		if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
			t.Fatalf("expected absent, got %v,%v", ok, err)
		}
	})

	t.Run("get con error", func(t *testing.T) {
		s := &PgStore{pool: &mockPgQuerier{row: mockRow{err: errors.New("conn reset")}}}
		if _, _, err := s.Get(ctx, "k"); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("set hace upsert", func(t *testing.T) {
		q := &mockPgQuerier{}
		s := &PgStore{pool: q}
		if err := s.Set(ctx, KeyLastActivity, "42"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if !strings.Contains(q.lastSQL, "ON CONFLICT") {
			t.Fatalf("expected upsert, got %s", q.lastSQL)
		}
		if err := s.Set(ctx, "", "x"); !errors.Is(err, ErrEmptyKey) {
			t.Fatalf("expected ErrEmptyKey, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		q := &mockPgQuerier{}
		s := &PgStore{pool: q}
		if err := s.Delete(ctx); err != nil || q.execCalls != 0 {
			t.Fatalf("empty delete should not hit db")
		}
		if err := s.Delete(ctx, "a", "b"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		keys, ok := q.lastArgs[0].([]string)
		if !ok || len(keys) != 2 {
			t.Fatalf("unexpected args: %+v", q.lastArgs)
		}
	})
}
