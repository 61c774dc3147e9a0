package handlers

import (
	"net/http"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/http/middleware"
	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

type AdminHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAdminHandler(auth *services.AuthService, users *services.UserService) *AdminHandler {
	return &AdminHandler{auth: auth, users: users}
}

// Cleanup barre tokens y códigos vencidos. Solo superusuarios.
func (h *AdminHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		response.WriteAppErr(w, err, "Error buscando usuario")
		return
	}
	if !user.IsSuperuser {
		response.WriteAppErr(w, apperrors.ErrForbidden, "Acceso denegado")
		return
	}

	tokens, err := h.auth.CleanupExpiredRefreshTokens()
	if err != nil {
		response.WriteAppErr(w, err, "Error limpiando tokens")
		return
	}
	codes, err := h.auth.CleanupExpiredVerificationCodes()
	if err != nil {
		response.WriteAppErr(w, err, "Error limpiando códigos")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"message":                "Limpieza completada",
		"refresh_tokens_deleted": tokens,
		"codes_deleted":          codes,
	})
}
