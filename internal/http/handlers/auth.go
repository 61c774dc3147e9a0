package handlers

import (
	"net/http"
	"strings"

	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

// AuthHandler expone registro, login y el ciclo de vida de sesiones.
type AuthHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthHandler(auth *services.AuthService, users *services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		response.WriteErr(w, http.StatusBadRequest, "Todos los campos son requeridos")
		return
	}
	if in.Password != in.ConfirmPassword {
		response.WriteErr(w, http.StatusBadRequest, "Las contraseñas no coinciden")
		return
	}

	user, err := h.users.Register(in.Username, in.Email, in.Password)
	if err != nil {
		response.WriteAppErr(w, err, "Error al registrar usuario")
		return
	}

	response.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Usuario registrado correctamente",
		"user":    userJSON(user),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		DeviceName string `json:"device_name"`
		DeviceType string `json:"device_type"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Password = strings.TrimSpace(in.Password)
	if in.Username == "" || in.Password == "" {
		response.WriteErr(w, http.StatusBadRequest, "Usuario y contraseña son requeridos")
		return
	}

	result, err := h.auth.Login(in.Username, in.Password, deviceInfoFromRequest(r, in.DeviceName, in.DeviceType))
	if err != nil {
		response.WriteAppErr(w, err, "Error al iniciar sesión")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"accessToken":           result.AccessToken,
		"accessTokenExpiresIn":  result.AccessExpiresIn,
		"refreshToken":          result.RefreshToken,
		"refreshTokenExpiresAt": result.RefreshExpiresAt.UTC(),
		"user":                  userJSON(result.User),
	})
}
