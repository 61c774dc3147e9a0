package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile es la ficha de una mascota.
type Profile struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex;not null;size:100"`
	Gender    string `gorm:"not null;size:20"`
	Variety   string `gorm:"not null;size:100"`
	Birthday  *time.Time
	Reminders []Reminder `gorm:"foreignKey:ProfileID"`
}
