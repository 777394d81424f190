package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"rental-admin/internal/auth"
	"rental-admin/internal/backend"
	"rental-admin/internal/repository"
	"rental-admin/internal/session"
	"rental-admin/internal/state"
)

// Mensajes de rechazo que quedan en el slice de login.
const (
	MsgLoginFailed    = "Đăng nhập thất bại"
	MsgSessionExpired = "Session expired"
	MsgNoAuthData     = "No auth data"
	MsgAuthCheck      = "Auth check failed"
)

var (
	ErrSessionExpired = errors.New("session expired")
	ErrNoAuthData     = errors.New("no auth data")
)

const hookTimeout = 2 * time.Second

// SessionMonitor es lo que AuthService necesita del monitor de sesion.
type SessionMonitor interface {
	SetStore(d state.Dispatcher)
	InitSession()
	ExtendSession()
	StopSession()
	IsSessionValid() bool
	Status() session.Status
}

// SessionInfo es el estado de sesion expuesto por la API y la consola.
type SessionInfo struct {
	session.Status
	User           json.RawMessage `json:"user,omitempty"`
	TokenExpiresAt *time.Time      `json:"tokenExpiresAt,omitempty"`
}

// AuthService coordina login, rehidratacion y logout.
type AuthService struct {
	logger   *zap.Logger
	api      repository.AuthRepository
	records  *auth.Repository
	monitor  SessionMonitor
	dispatch state.Dispatcher
}

func NewAuthService(logger *zap.Logger, api repository.AuthRepository, records *auth.Repository, monitor SessionMonitor, dispatch state.Dispatcher) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		logger:   logger,
		api:      api,
		records:  records,
		monitor:  monitor,
		dispatch: dispatch,
	}
}

// LogoutHooks devuelve los efectos del reducer de logout: borrar el AuthRecord
// y detener el monitor.
func LogoutHooks(records *auth.Repository, monitor SessionMonitor) state.LogoutHooks {
	return state.LogoutHooks{
		ClearAuth: func() {
			ctx, cancel := context.WithTimeout(context.Background(), hookTimeout)
			defer cancel()
			records.Clear(ctx)
		},
		StopSession: monitor.StopSession,
	}
}

// Login autentica, persiste el AuthRecord y arranca el monitor.
// En caso de error devuelve el error del backend; el mensaje visible se obtiene
// con backend.Message(err, MsgLoginFailed).
func (s *AuthService) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	res, err := s.api.SignIn(ctx, repository.Credentials{Email: email, Password: password})
	if err != nil {
		msg := backend.Message(err, MsgLoginFailed)
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		s.records.Clear(ctx)
		s.dispatch.Dispatch(state.Action{Type: state.ActionLoginRejected, Payload: msg})
		return nil, err
	}

	s.records.Clear(ctx)
	s.records.Save(ctx, res.User, res.Token)
	user := res.User
	if len(user) == 0 {
		user = json.RawMessage("null")
	}
	s.dispatch.Dispatch(state.Action{Type: state.ActionLoginFulfilled, Payload: user})
	s.monitor.ExtendSession()
	s.monitor.InitSession()
	s.logger.Info("login succeeded", zap.String("email", email))
	return user, nil
}

// CheckStatus rehidrata la sesion desde el almacenamiento durable.
func (s *AuthService) CheckStatus(ctx context.Context) (json.RawMessage, error) {
	rec, err := s.records.Load(ctx)
	switch {
	case errors.Is(err, auth.ErrCorruptedRecord):
		s.logger.Warn("auth check failed", zap.Error(err))
		s.dispatch.Dispatch(state.Action{Type: state.ActionCheckRejected, Payload: MsgAuthCheck})
		return nil, err
	case err != nil:
		s.dispatch.Dispatch(state.Action{Type: state.ActionCheckRejected, Payload: MsgNoAuthData})
		return nil, ErrNoAuthData
	}

	if !s.monitor.IsSessionValid() {
		s.monitor.StopSession()
		s.records.Clear(ctx)
		s.dispatch.Dispatch(state.Action{Type: state.ActionCheckRejected, Payload: MsgSessionExpired})
		return nil, ErrSessionExpired
	}

	s.dispatch.Dispatch(state.Action{Type: state.ActionCheckFulfilled, Payload: rec.User})
	return rec.User, nil
}

// Start es la inicializacion al arrancar: registra el dispatcher en el
// monitor, rehidrata y arranca el seguimiento solo si la sesion sigue valida.
func (s *AuthService) Start(ctx context.Context) error {
	s.monitor.SetStore(s.dispatch)

	if _, err := s.CheckStatus(ctx); err != nil {
		s.monitor.StopSession()
		return err
	}
	if !s.monitor.IsSessionValid() {
		s.monitor.StopSession()
		s.records.Purge(ctx)
		return ErrSessionExpired
	}
	s.monitor.InitSession()
	return nil
}

// Logout despacha login/logout; el reducer limpia el AuthRecord y detiene el monitor.
func (s *AuthService) Logout(ctx context.Context) {
	s.dispatch.Dispatch(state.Action{Type: state.ActionLogout})
	s.logger.Info("logout")
}

// Session devuelve el estado del monitor junto con el usuario y la expiracion del token.
func (s *AuthService) Session(ctx context.Context) SessionInfo {
	info := SessionInfo{Status: s.monitor.Status()}
	rec, err := s.records.Load(ctx)
	if err != nil {
		return info
	}
	info.User = rec.User
	if exp, err := auth.TokenExpiry(rec.AccessToken); err == nil {
		info.TokenExpiresAt = &exp
	}
	return info
}
