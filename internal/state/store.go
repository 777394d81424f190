package state

import (
	"encoding/json"
	"sync"
)

// Tags de acciones del slice de login.
const (
	ActionLogout         = "login/logout"
	ActionLoginFulfilled = "login/loginFulfilled"
	ActionLoginRejected  = "login/loginRejected"
	ActionCheckFulfilled = "login/checkFulfilled"
	ActionCheckRejected  = "login/checkRejected"
	ActionClearError     = "login/clearError"
)

// Action es un objeto de accion etiquetado.
type Action struct {
	Type    string
	Payload any
}

// Dispatcher es la capacidad global de despacho.
type Dispatcher interface {
	Dispatch(action Action)
}

// LoginState es el slice de autenticacion de la consola.
type LoginState struct {
	User            json.RawMessage `json:"user,omitempty"`
	IsAuthenticated bool            `json:"isAuthenticated"`
	Error           string          `json:"error,omitempty"`
}

// LogoutHooks son los efectos del reducer de logout: limpiar el AuthRecord y
// detener el monitor de sesion sin borrar el marcador de actividad.
type LogoutHooks struct {
	ClearAuth   func()
	StopSession func()
}

// Store aplica reducers en serie y notifica a los suscriptores.
type Store struct {
	mu        sync.Mutex
	login     LoginState
	hooks     LogoutHooks
	listeners []func(LoginState)
}

func NewStore(hooks LogoutHooks) *Store {
	return &Store{hooks: hooks}
}

// SetHooks reemplaza los efectos de logout. Permite cablear el store antes que el monitor.
func (s *Store) SetHooks(hooks LogoutHooks) {
	s.mu.Lock()
	s.hooks = hooks
	s.mu.Unlock()
}

func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	hooks := s.hooks
	runLogout := false
	switch action.Type {
	case ActionLogout:
		s.login = LoginState{}
		runLogout = true
	case ActionLoginFulfilled, ActionCheckFulfilled:
		user, _ := action.Payload.(json.RawMessage)
		s.login = LoginState{User: user, IsAuthenticated: len(user) > 0}
	case ActionLoginRejected, ActionCheckRejected:
		msg, _ := action.Payload.(string)
		s.login = LoginState{Error: msg}
	case ActionClearError:
		s.login.Error = ""
	}
	snapshot := s.login
	listeners := append([]func(LoginState){}, s.listeners...)
	s.mu.Unlock()

	// Los efectos corren fuera del lock: StopSession vuelve a entrar al monitor.
	if runLogout {
		if hooks.ClearAuth != nil {
			hooks.ClearAuth()
		}
		if hooks.StopSession != nil {
			hooks.StopSession()
		}
	}
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Subscribe registra un listener que recibe el estado tras cada accion.
func (s *Store) Subscribe(fn func(LoginState)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) Login() LoginState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.login
}
