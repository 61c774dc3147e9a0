package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.WriteErr(w, http.StatusBadRequest, "JSON inválido")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		response.WriteErr(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func deviceInfoFromRequest(r *http.Request, name, deviceType string) services.DeviceInfo {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}
	return services.DeviceInfo{
		Name:      name,
		Type:      deviceType,
		IPAddress: ip,
		UserAgent: r.UserAgent(),
	}
}

func Health(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
