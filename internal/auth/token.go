package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenUnreadable = errors.New("access token unreadable")

// TokenExpiry lee el claim exp del access token sin verificar la firma: el
// backend es quien valida el token, aqui solo se informa la fecha.
func TokenExpiry(token string) (time.Time, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, ErrTokenUnreadable
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrTokenUnreadable
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrTokenUnreadable
	}
	return exp.Time, nil
}
