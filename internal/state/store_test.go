package state

import (
	"encoding/json"
	"testing"
)

func TestStore_LoginAndLogout(t *testing.T) {
	var cleared, stopped int
	s := NewStore(LogoutHooks{
		ClearAuth:   func() { cleared++ },
		StopSession: func() { stopped++ },
	})
	var seen []LoginState
	s.Subscribe(func(st LoginState) { seen = append(seen, st) })

	s.Dispatch(Action{Type: ActionLoginFulfilled, Payload: json.RawMessage(`{"id":7}`)})
	if st := s.Login(); !st.IsAuthenticated || string(st.User) != `{"id":7}` {
		t.Fatalf("expected authenticated state, got %+v", st)
	}

	s.Dispatch(Action{Type: ActionLogout})
	if st := s.Login(); st.IsAuthenticated || st.User != nil {
		t.Fatalf("expected cleared state, got %+v", st)
	}
	if cleared != 1 || stopped != 1 {
		t.Fatalf("expected logout hooks once, got clear=%d stop=%d", cleared, stopped)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !seen[0].IsAuthenticated || seen[1].IsAuthenticated {
		t.Fatalf("unexpected notifications: %+v", seen)
	}
}

func TestStore_RejectedAndClearError(t *testing.T) {
	s := NewStore(LogoutHooks{})
	s.Dispatch(Action{Type: ActionCheckRejected, Payload: "Session expired"})
	if st := s.Login(); st.Error != "Session expired" || st.IsAuthenticated {
		t.Fatalf("unexpected state: %+v", st)
	}
	s.Dispatch(Action{Type: ActionClearError})
	if st := s.Login(); st.Error != "" {
		t.Fatalf("expected error cleared, got %+v", st)
	}
}

func TestStore_LogoutReentrantHook(t *testing.T) {
	s := NewStore(LogoutHooks{})
	s.SetHooks(LogoutHooks{StopSession: func() {
		// Un hook que vuelve a leer el store no debe bloquear.
		_ = s.Login()
	}})
	s.Dispatch(Action{Type: ActionLogout})
}
