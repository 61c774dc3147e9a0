package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"petcare-backend/internal/apperrors"
)

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteErr(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteAppErr traduce los errores de negocio a códigos HTTP; cualquier
// error no clasificado es un 500 con el mensaje genérico dado.
func WriteAppErr(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		WriteErr(w, http.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, apperrors.ErrConflict):
		WriteErr(w, http.StatusConflict, "El recurso ya existe")
	case errors.Is(err, apperrors.ErrUnauthorized):
		WriteErr(w, http.StatusUnauthorized, "Credenciales inválidas")
	case errors.Is(err, apperrors.ErrTokenExpired):
		WriteErr(w, http.StatusUnauthorized, "Token expirado")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		WriteErr(w, http.StatusUnauthorized, "Token inválido")
	case errors.Is(err, apperrors.ErrForbidden):
		WriteErr(w, http.StatusForbidden, "Acceso denegado")
	default:
		WriteErr(w, http.StatusInternalServerError, fallback)
	}
}
