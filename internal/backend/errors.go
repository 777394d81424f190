package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Mensajes visibles para el usuario.
const (
	MsgNetwork      = "Không thể kết nối đến server. Vui lòng kiểm tra kết nối mạng."
	MsgTimeout      = "Request timeout. Vui lòng thử lại."
	MsgBadRequest   = "Thông tin không hợp lệ. Vui lòng kiểm tra lại."
	MsgUnauthorized = "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại."
	MsgForbidden    = "Không có quyền truy cập thông tin này."
	MsgConflict     = "Dữ liệu bị xung đột với tài khoản khác."
	MsgServer       = "Lỗi server. Vui lòng thử lại sau."
	MsgSystem       = "Lỗi hệ thống"
)

// APIError es un fallo del backend listo para mostrar en la UI.
// Status es 0 cuando no hubo respuesta.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return MsgSystem
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusMessage clasifica un status HTTP. Devuelve "" si no hay mensaje para ese status.
func StatusMessage(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return MsgBadRequest
	case status == http.StatusUnauthorized:
		return MsgUnauthorized
	case status == http.StatusForbidden:
		return MsgForbidden
	case status == http.StatusConflict:
		return MsgConflict
	case status >= 500:
		return MsgServer
	}
	return ""
}

// Message devuelve el texto a mostrar para err, o fallback si no hay uno mejor.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if fallback == "" {
		fallback = MsgSystem
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// bodyMessage aplica la prioridad: content (texto), message, cuerpo crudo, status.
func bodyMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		var env struct {
			Content json.RawMessage `json:"content"`
			Message string          `json:"message"`
		}
		if err := json.Unmarshal(body, &env); err == nil {
			var content string
			if len(env.Content) > 0 && json.Unmarshal(env.Content, &content) == nil && strings.TrimSpace(content) != "" {
				return content
			}
			if strings.TrimSpace(env.Message) != "" {
				return env.Message
			}
		} else {
			var s string
			if json.Unmarshal(body, &s) == nil {
				if strings.TrimSpace(s) != "" {
					return s
				}
			} else if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
				return trimmed
			}
		}
	}
	return StatusMessage(status)
}
