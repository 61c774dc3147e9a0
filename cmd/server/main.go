package main

import (
	"log"
	"net/http"
	"os"

	"petcare-backend/internal/config"
	httproutes "petcare-backend/internal/http"
	"petcare-backend/internal/http/handlers"
	"petcare-backend/internal/http/middleware"
	"petcare-backend/internal/services"
	"petcare-backend/pkg/security"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(http.ListenAndServe, os.Getenv); err != nil {
		log.Fatal(err)
	}
}

func run(listen func(string, http.Handler) error, getEnv func(string) string) error {
	_ = godotenv.Load(".env")

	addr, handler, err := buildServer(getEnv)
	if err != nil {
		return err
	}
	log.Println("Server running at http://localhost" + addr)
	return listen(addr, handler)
}

func buildServer(getEnv func(string) string) (string, http.Handler, error) {
	settings, err := config.LoadSettings(getEnv)
	if err != nil {
		return "", nil, err
	}

	db, err := config.Open(settings.DatabaseURL)
	if err != nil {
		return "", nil, err
	}

	signer, err := security.NewTokenSigner(settings.JWTSecret, settings.AccessTokenTTL)
	if err != nil {
		return "", nil, err
	}

	authSvc := services.NewAuthService(db, signer, settings.AccessTokenTTL, settings.RefreshTokenTTL)
	userSvc := services.NewUserService(db)
	profileSvc := services.NewProfileService(db)
	reminderSvc := services.NewReminderService(db)
	foodSvc := services.NewFoodService(db)

	authMw := middleware.NewAuth(signer)

	mux := http.NewServeMux()
	httproutes.Routes(mux, httproutes.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, userSvc),
		Users:     handlers.NewUserHandler(userSvc, authSvc),
		Profiles:  handlers.NewProfileHandler(profileSvc, reminderSvc),
		Reminders: handlers.NewReminderHandler(reminderSvc),
		Foods:     handlers.NewFoodHandler(foodSvc),
		Admin:     handlers.NewAdminHandler(authSvc, userSvc),
		Feed:      handlers.NewFeedHandler(authMw, reminderSvc),
	}, authMw)

	return ":" + settings.Port, mux, nil
}
