package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `gorm:"uniqueIndex;not null;size:50"`
	Email          string `gorm:"uniqueIndex;not null;size:100"`
	HashedPassword string `gorm:"not null;size:255"`
	IsActive       bool   `gorm:"not null;default:true"`
	IsVerified     bool   `gorm:"not null;default:false"`
	IsSuperuser    bool   `gorm:"not null;default:false"`
	LastLoginAt    *time.Time
}
