package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"rental-admin/internal/storage"
)

var (
	ErrNoRecord        = errors.New("no auth data")
	ErrCorruptedRecord = errors.New("auth record corrupted")
)

// Record es el estado de autenticacion persistido.
type Record struct {
	IsAuthenticated bool
	User            json.RawMessage
	AccessToken     string
}

// Repository persiste el AuthRecord en el almacenamiento durable.
type Repository struct {
	store *storage.Lenient
}

func NewRepository(store *storage.Lenient) *Repository {
	return &Repository{store: store}
}

// Save guarda usuario, bandera y token. Un token vacio no se escribe.
func (r *Repository) Save(ctx context.Context, user json.RawMessage, token string) {
	if len(user) == 0 {
		user = json.RawMessage("null")
	}
	r.store.Set(ctx, storage.KeyAuthUser, string(user))
	r.store.Set(ctx, storage.KeyAuthIsAuthenticated, "true")
	if strings.TrimSpace(token) != "" {
		r.store.Set(ctx, storage.KeyAccessToken, token)
	}
}

// Load rehidrata el AuthRecord. Si auth_user no es JSON valido se borran todas
// las claves de autenticacion y se devuelve ErrCorruptedRecord.
func (r *Repository) Load(ctx context.Context) (Record, error) {
	rawUser := r.store.Get(ctx, storage.KeyAuthUser)
	rawAuth := r.store.Get(ctx, storage.KeyAuthIsAuthenticated)
	if rawUser == "" || rawAuth == "" {
		return Record{}, ErrNoRecord
	}

	var isAuth bool
	if err := json.Unmarshal([]byte(rawAuth), &isAuth); err != nil {
		r.Clear(ctx)
		return Record{}, ErrCorruptedRecord
	}
	if !json.Valid([]byte(rawUser)) {
		r.Clear(ctx)
		return Record{}, ErrCorruptedRecord
	}
	if !isAuth {
		return Record{}, ErrNoRecord
	}
	return Record{
		IsAuthenticated: true,
		User:            json.RawMessage(rawUser),
		AccessToken:     r.store.Get(ctx, storage.KeyAccessToken),
	}, nil
}

// Present indica si hay marcadores de autenticacion, sin validar el JSON.
func (r *Repository) Present(ctx context.Context) bool {
	return r.store.Get(ctx, storage.KeyAuthIsAuthenticated) == "true" &&
		r.store.Get(ctx, storage.KeyAuthUser) != ""
}

// AccessToken devuelve el token guardado o "".
func (r *Repository) AccessToken(ctx context.Context) string {
	return r.store.Get(ctx, storage.KeyAccessToken)
}

// Clear borra usuario, bandera y token. El marcador de actividad queda intacto.
func (r *Repository) Clear(ctx context.Context) {
	r.store.Delete(ctx, storage.KeyAuthUser, storage.KeyAuthIsAuthenticated, storage.KeyAccessToken)
}

// Purge borra todas las claves de autenticacion, incluido el marcador de actividad.
func (r *Repository) Purge(ctx context.Context) {
	r.store.Delete(ctx, storage.KeyAuthUser, storage.KeyAuthIsAuthenticated, storage.KeyAccessToken, storage.KeyLastActivity)
}

// UserID extrae el id del perfil guardado, aceptando id, userId o maNguoiDung.
func (r Record) UserID() (int, bool) {
	return UserIDFromJSON(r.User)
}

func UserIDFromJSON(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var probe struct {
		ID          json.Number `json:"id"`
		UserID      json.Number `json:"userId"`
		MaNguoiDung json.Number `json:"maNguoiDung"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, false
	}
	for _, n := range []json.Number{probe.ID, probe.UserID, probe.MaNguoiDung} {
		if n == "" {
			continue
		}
		if v, err := n.Int64(); err == nil && v != 0 {
			return int(v), true
		}
	}
	return 0, false
}
