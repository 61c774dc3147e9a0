package models

import (
	"time"

	"gorm.io/gorm"
)

type Reminder struct {
	gorm.Model
	Title       string    `gorm:"not null;size:100"`
	Type        string    `gorm:"not null;size:50"`
	DueDate     time.Time `gorm:"index;not null"`
	IsDone      bool      `gorm:"not null;default:false"`
	Description string    `gorm:"size:500"`
	ProfileID   uint      `gorm:"index;not null"`
}
