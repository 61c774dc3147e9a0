package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/response"
	"petcare-backend/pkg/security"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth protege rutas con el access token firmado.
type Auth struct {
	signer *security.TokenSigner
}

func NewAuth(signer *security.TokenSigner) *Auth {
	return &Auth{signer: signer}
}

// RequireJWT valida el Bearer token y deja el userID en el contexto.
func (a *Auth) RequireJWT(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
			return
		}

		userID, err := a.Authenticate(raw)
		if err != nil {
			response.WriteAppErr(w, err, "Error validando token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}

// Authenticate verifica un access token y devuelve el userID del subject.
func (a *Auth) Authenticate(token string) (uint, error) {
	subject, err := a.signer.Verify(token)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, apperrors.ErrTokenInvalid
	}
	return uint(id), nil
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// UserID recupera el usuario autenticado del contexto de la petición.
func UserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(userIDKey).(uint)
	return id, ok
}
