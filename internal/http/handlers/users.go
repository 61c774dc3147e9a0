package handlers

import (
	"net/http"

	"petcare-backend/internal/http/middleware"
	"petcare-backend/internal/models"
	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
	"petcare-backend/pkg/security"
)

type UserHandler struct {
	users *services.UserService
	auth  *services.AuthService
}

func NewUserHandler(users *services.UserService, auth *services.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

func userJSON(u *models.User) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"is_active":     u.IsActive,
		"is_verified":   u.IsVerified,
		"last_login_at": u.LastLoginAt,
		"created_at":    u.CreatedAt,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
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
	response.WriteJSON(w, http.StatusOK, userJSON(user))
}

// UpdateMe aplica una actualización parcial sobre el usuario autenticado.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	var in struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.users.Update(userID, services.UserUpdate{
		Username: in.Username,
		Email:    in.Email,
	})
	if err != nil {
		response.WriteAppErr(w, err, "Error al actualizar usuario")
		return
	}
	response.WriteJSON(w, http.StatusOK, userJSON(user))
}

// ChangePassword exige la contraseña actual antes de aceptar la nueva.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
		return
	}

	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		response.WriteErr(w, http.StatusBadRequest, "Contraseña actual y nueva son requeridas")
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		response.WriteAppErr(w, err, "Error buscando usuario")
		return
	}
	if !security.CheckPassword(user.HashedPassword, in.CurrentPassword) {
		response.WriteErr(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	if err := h.users.ChangePassword(userID, in.NewPassword); err != nil {
		response.WriteAppErr(w, err, "Error al cambiar contraseña")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contraseña actualizada correctamente"})
}
