package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"petcare-backend/internal/apperrors"
)

// TokenSigner emite y valida access tokens firmados con HS256.
// El secreto se carga una sola vez al arranque y es inmutable.
type TokenSigner struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenSigner(secret string, defaultTTL time.Duration) (*TokenSigner, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET no configurado")
	}
	if defaultTTL <= 0 {
		defaultTTL = 50 * time.Minute
	}
	return &TokenSigner{secret: []byte(secret), defaultTTL: defaultTTL}, nil
}

// Issue firma {sub, exp, jti}; exp se serializa como epoch UTC en segundos.
// Con ttl <= 0 se usa el TTL configurado.
func (s *TokenSigner) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify devuelve el subject del token. Un token expirado se distingue de
// uno inválido; cualquier otro fallo de formato, firma o algoritmo se
// reporta igual, sin detalle interno.
func (s *TokenSigner) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.ErrTokenExpired
		}
		return "", apperrors.ErrTokenInvalid
	}
	return claims.Subject, nil
}
