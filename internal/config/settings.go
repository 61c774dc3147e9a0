package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Settings es la configuración del proceso: se carga una vez al arranque
// y es de solo lectura después.
type Settings struct {
	DatabaseURL     string
	Port            string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// LoadSettings lee la configuración del entorno. Un JWT_SECRET ausente es
// una condición fatal de arranque, no un error por petición.
func LoadSettings(getEnv func(string) string) (*Settings, error) {
	secret := strings.TrimSpace(getEnv("JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("JWT_SECRET es requerido")
	}

	port := strings.TrimSpace(getEnv("PORT"))
	if port == "" {
		port = "8080"
	}

	accessMinutes := envInt(getEnv, "ACCESS_TOKEN_TTL_MINUTES", 50)
	refreshHours := envInt(getEnv, "REFRESH_TOKEN_TTL_HOURS", 30*24)

	return &Settings{
		DatabaseURL:     getEnv("DATABASE_URL"),
		Port:            port,
		JWTSecret:       secret,
		AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(refreshHours) * time.Hour,
	}, nil
}

func envInt(getEnv func(string) string, key string, fallback int) int {
	raw := strings.TrimSpace(getEnv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
