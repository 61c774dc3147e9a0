package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/models"
	"petcare-backend/internal/response"
)

// ForgotPassword emite un código de reseteo. La respuesta es la misma
// exista o no la cuenta: nada filtra qué correos están registrados.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		response.WriteErr(w, http.StatusBadRequest, "El correo es requerido")
		return
	}

	user, err := h.users.GetByEmail(in.Email)
	if err == nil {
		if _, err := h.auth.InvalidateCodes(user.ID, models.CodeTypePasswordReset); err != nil {
			response.WriteAppErr(w, err, "Error al invalidar códigos previos")
			return
		}
		code, err := h.auth.CreateVerificationCode(user.ID, models.CodeTypePasswordReset, 0, 0)
		if err != nil {
			response.WriteAppErr(w, err, "Error al generar código")
			return
		}
		log.Printf("Código de reseteo para usuario %d: %s", user.ID, code.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		response.WriteAppErr(w, err, "Error buscando usuario")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Si el correo está registrado, se envió un código de reseteo",
	})
}

// ResetPassword consume el código de reseteo, cambia la contraseña y
// revoca todas las sesiones del usuario.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Code == "" || in.NewPassword == "" {
		response.WriteErr(w, http.StatusBadRequest, "Correo, código y contraseña nueva son requeridos")
		return
	}

	user, err := h.users.GetByEmail(in.Email)
	if err != nil {
		// Misma respuesta que un código incorrecto.
		if errors.Is(err, apperrors.ErrNotFound) {
			response.WriteErr(w, http.StatusBadRequest, "Código inválido o vencido")
			return
		}
		response.WriteAppErr(w, err, "Error buscando usuario")
		return
	}

	verified, err := h.auth.VerifyCode(user.ID, in.Code, models.CodeTypePasswordReset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.WriteErr(w, http.StatusBadRequest, "Código inválido o vencido")
			return
		}
		response.WriteAppErr(w, err, "Error al verificar código")
		return
	}
	if verified == nil {
		response.WriteErr(w, http.StatusBadRequest, "Código inválido o vencido")
		return
	}

	if err := h.users.ChangePassword(user.ID, in.NewPassword); err != nil {
		response.WriteAppErr(w, err, "Error al cambiar contraseña")
		return
	}
	if _, err := h.auth.RevokeAllForUser(user.ID); err != nil {
		response.WriteAppErr(w, err, "Error al revocar sesiones")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contraseña actualizada correctamente"})
}
