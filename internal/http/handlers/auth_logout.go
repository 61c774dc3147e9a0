package handlers

import (
	"net/http"

	"petcare-backend/internal/response"
)

// Logout revoca el refresh token presentado. Siempre responde 200: cerrar
// una sesión ya cerrada no es un error para el cliente.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.RefreshToken == "" {
		response.WriteErr(w, http.StatusBadRequest, "refreshToken es requerido")
		return
	}

	if err := h.auth.Logout(in.RefreshToken); err != nil {
		response.WriteAppErr(w, err, "Error al cerrar sesión")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Sesión cerrada correctamente"})
}
