package handlers

import (
	"errors"
	"log"
	"net/http"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/http/middleware"
	"petcare-backend/internal/models"
	"petcare-backend/internal/response"
)

// SendVerificationCode invalida los códigos pendientes del usuario y emite
// uno nuevo. El envío por correo queda fuera de alcance: el código se
// registra en el log del servidor.
func (h *AuthHandler) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	if _, err := h.auth.InvalidateCodes(userID, models.CodeTypeEmailVerification); err != nil {
		response.WriteAppErr(w, err, "Error al invalidar códigos previos")
		return
	}

	code, err := h.auth.CreateVerificationCode(userID, models.CodeTypeEmailVerification, 0, 0)
	if err != nil {
		response.WriteAppErr(w, err, "Error al generar código")
		return
	}

	log.Printf("Código de verificación para usuario %d: %s", userID, code.Code)

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message":    "Código de verificación enviado",
		"expires_at": code.ExpiresAt.UTC(),
	})
}

// ConfirmVerification consume el código y marca el correo como verificado.
func (h *AuthHandler) ConfirmVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	var in struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if len(in.Code) < 4 || len(in.Code) > 10 {
		response.WriteErr(w, http.StatusBadRequest, "Código inválido")
		return
	}

	verified, err := h.auth.VerifyCode(userID, in.Code, models.CodeTypeEmailVerification)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.WriteErr(w, http.StatusNotFound, "Código no encontrado")
			return
		}
		response.WriteAppErr(w, err, "Error al verificar código")
		return
	}
	if verified == nil {
		// Intento cobrado pero el código ya no es válido.
		response.WriteErr(w, http.StatusBadRequest, "Código inválido o vencido")
		return
	}

	if err := h.users.VerifyEmail(userID); err != nil {
		response.WriteAppErr(w, err, "Error al marcar correo verificado")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Correo verificado correctamente"})
}
