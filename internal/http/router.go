package http

import (
	"net/http"

	"petcare-backend/internal/http/handlers"
	"petcare-backend/internal/http/middleware"
)

// Handlers agrupa todo lo que el router necesita cablear.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Profiles  *handlers.ProfileHandler
	Reminders *handlers.ReminderHandler
	Foods     *handlers.FoodHandler
	Admin     *handlers.AdminHandler
	Feed      *handlers.FeedHandler
}

// Routes registra toda la superficie HTTP sobre el mux.
func Routes(mux *http.ServeMux, h Handlers, auth *middleware.Auth) {
	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /register", h.Auth.Register)
	mux.HandleFunc("POST /login", h.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /auth/verify/send", auth.RequireJWT(h.Auth.SendVerificationCode))
	mux.HandleFunc("POST /auth/verify/confirm", auth.RequireJWT(h.Auth.ConfirmVerification))
	mux.HandleFunc("POST /auth/password/forgot", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /auth/password/reset", h.Auth.ResetPassword)

	mux.HandleFunc("GET /users/me", auth.RequireJWT(h.Users.Me))
	mux.HandleFunc("PATCH /users/me", auth.RequireJWT(h.Users.UpdateMe))
	mux.HandleFunc("POST /users/me/password", auth.RequireJWT(h.Users.ChangePassword))

	mux.HandleFunc("POST /profiles", auth.RequireJWT(h.Profiles.Create))
	mux.HandleFunc("GET /profiles", auth.RequireJWT(h.Profiles.List))
	mux.HandleFunc("GET /profiles/{id}", auth.RequireJWT(h.Profiles.Get))
	mux.HandleFunc("PATCH /profiles/{id}", auth.RequireJWT(h.Profiles.Update))
	mux.HandleFunc("DELETE /profiles/{id}", auth.RequireJWT(h.Profiles.Delete))
	mux.HandleFunc("GET /profiles/{id}/reminders", auth.RequireJWT(h.Profiles.ListReminders))

	mux.HandleFunc("POST /reminders", auth.RequireJWT(h.Reminders.Create))
	mux.HandleFunc("GET /reminders", auth.RequireJWT(h.Reminders.List))
	mux.HandleFunc("GET /reminders/{id}", auth.RequireJWT(h.Reminders.Get))
	mux.HandleFunc("PATCH /reminders/{id}", auth.RequireJWT(h.Reminders.Update))
	mux.HandleFunc("DELETE /reminders/{id}", auth.RequireJWT(h.Reminders.Delete))

	mux.HandleFunc("POST /foods", auth.RequireJWT(h.Foods.Create))
	mux.HandleFunc("GET /foods", auth.RequireJWT(h.Foods.List))
	mux.HandleFunc("GET /foods/{id}", auth.RequireJWT(h.Foods.Get))
	mux.HandleFunc("PATCH /foods/{id}", auth.RequireJWT(h.Foods.Update))
	mux.HandleFunc("DELETE /foods/{id}", auth.RequireJWT(h.Foods.Delete))

	mux.HandleFunc("POST /admin/cleanup", auth.RequireJWT(h.Admin.Cleanup))

	mux.HandleFunc("GET /ws/reminders", h.Feed.ReminderFeed)
}
