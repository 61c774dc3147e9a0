package apperrors

import "errors"

// Errores de negocio que la capa HTTP traduce a códigos de estado.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Token errors: expired se distingue de invalid para que el cliente
	// pueda ofrecer un flujo de refresh en lugar de un re-login.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
