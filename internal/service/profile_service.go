package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"rental-admin/internal/auth"
	"rental-admin/internal/backend"
	"rental-admin/internal/domain"
	"rental-admin/internal/repository"
	"rental-admin/internal/state"
)

const (
	MsgNotLoggedIn   = "Chưa đăng nhập"
	MsgProfileLoad   = "Không tải được hồ sơ"
	MsgProfileUpdate = "Cập nhật hồ sơ thất bại"
)

var ErrNotLoggedIn = errors.New("not logged in")

// LoginSource expone el slice de login actual.
type LoginSource interface {
	Login() state.LoginState
}

// ProfileService resuelve el perfil del usuario autenticado.
type ProfileService struct {
	logger  *zap.Logger
	repo    repository.ProfileRepository
	login   LoginSource
	records *auth.Repository
}

func NewProfileService(logger *zap.Logger, repo repository.ProfileRepository, login LoginSource, records *auth.Repository) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{logger: logger, repo: repo, login: login, records: records}
}

// Fetch busca el perfil por el id del usuario logueado, o del auth_user guardado.
func (s *ProfileService) Fetch(ctx context.Context) (domain.Profile, error) {
	id, ok := s.currentUserID(ctx)
	if !ok {
		return domain.Profile{}, notLoggedIn()
	}
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("fetch profile failed", zap.Int("user_id", id), zap.Error(err))
		return domain.Profile{}, err
	}
	if profile.Email == "" {
		profile.Email = s.loginEmail()
	}
	return profile, nil
}

// Update envia el perfil con PUT users/{id}. Sin id se usa el del usuario logueado.
func (s *ProfileService) Update(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	if profile.ID == 0 {
		id, ok := s.currentUserID(ctx)
		if !ok {
			return domain.Profile{}, notLoggedIn()
		}
		profile.ID = id
	}
	updated, err := s.repo.Update(ctx, profile)
	if err != nil {
		s.logger.Error("update profile failed", zap.Int("user_id", profile.ID), zap.Error(err))
		return domain.Profile{}, err
	}
	return updated, nil
}

func (s *ProfileService) currentUserID(ctx context.Context) (int, bool) {
	if s.login != nil {
		if id, ok := auth.UserIDFromJSON(s.login.Login().User); ok {
			return id, true
		}
	}
	if s.records == nil {
		return 0, false
	}
	rec, err := s.records.Load(ctx)
	if err != nil {
		return 0, false
	}
	return rec.UserID()
}

func (s *ProfileService) loginEmail() string {
	if s.login == nil {
		return ""
	}
	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(s.login.Login().User, &probe); err != nil {
		return ""
	}
	return probe.Email
}

func notLoggedIn() error {
	return &backend.APIError{Status: http.StatusUnauthorized, Message: MsgNotLoggedIn, Err: ErrNotLoggedIn}
}
