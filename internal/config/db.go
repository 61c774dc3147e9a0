package config

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"petcare-backend/internal/models"
)

// Open conecta a la base y ejecuta las migraciones. SQLite para DSNs en
// memoria o de archivo (dev/tests), PostgreSQL para todo lo demás.
// TranslateError permite detectar gorm.ErrDuplicatedKey en ambos motores.
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		dialector = sqlite.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.VerificationCode{},
		&models.Profile{},
		&models.Reminder{},
		&models.Food{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
