package models

import "gorm.io/gorm"

type Food struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null;size:100"`
	Brand       string `gorm:"index;not null;size:100"`
	KcalsPerG   *float64
	Price       *float64
	Weight      *float64
	Description string `gorm:"size:255"`
}
