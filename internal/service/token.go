package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims — содержимое сессионного токена: sub = логин, jti = id сессии.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// issueToken подписывает HS256-токен для сессии.
func issueToken(secret, sessionID, login string, now time.Time, ttl time.Duration) (string, error) {
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parseToken проверяет подпись и срок действия. Любая ошибка сводится к ErrInvalidToken.
func parseToken(secret, token string, opts ...jwt.ParserOption) (*TokenClaims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}, opts...)
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing jti or sub", ErrInvalidToken)
	}
	return claims, nil
}

// isExpired — токен подписан верно, но истёк.
func isExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
