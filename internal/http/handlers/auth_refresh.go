package handlers

import (
	"net/http"

	"petcare-backend/internal/response"
)

// Refresh rota el refresh token presentado y devuelve un par nuevo.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.auth.Refresh(in.RefreshToken, deviceInfoFromRequest(r, "", ""))
	if err != nil {
		response.WriteAppErr(w, err, "No se pudo renovar la sesión")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"accessToken":           result.AccessToken,
		"accessTokenExpiresIn":  result.AccessExpiresIn,
		"refreshToken":          result.RefreshToken,
		"refreshTokenExpiresAt": result.RefreshExpiresAt.UTC(),
		"message":               "Token renovado correctamente",
	})
}
