package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Claves persistidas por la consola.
const (
	KeyAuthUser            = "auth_user"
	KeyAuthIsAuthenticated = "auth_isAuthenticated"
	KeyAccessToken         = "accessToken"
	KeyLastActivity        = "lastActivity"
)

// ErrEmptyKey se devuelve cuando se intenta escribir sin clave.
var ErrEmptyKey = errors.New("storage: empty key")

// Store es el almacenamiento durable clave-valor (string -> string).
// Sobrevive a reinicios del proceso, igual que el local storage de un navegador.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStore implementa Store en memoria. Util para tests y ejecuciones efimeras.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.items, k)
	}
	return nil
}
