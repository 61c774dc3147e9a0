package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CodeTypeEmailVerification = "email_verification"
	CodeTypePasswordReset     = "password_reset"
)

// VerificationCode es un código de un solo uso con límite de intentos.
type VerificationCode struct {
	gorm.Model
	UserID      uint      `gorm:"index;not null"`
	User        User      `gorm:"constraint:OnDelete:CASCADE"`
	Code        string    `gorm:"index;not null;size:10"`
	CodeType    string    `gorm:"index;not null;size:20"`
	ExpiresAt   time.Time `gorm:"index;not null"`
	IsUsed      bool      `gorm:"index;not null;default:false"`
	UsedAt      *time.Time
	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:5"`
}

// IsValid: sin usar, con intentos disponibles y sin expirar.
func (c *VerificationCode) IsValid() bool {
	if c.IsUsed {
		return false
	}
	if c.Attempts >= c.MaxAttempts {
		return false
	}
	return time.Now().UTC().Before(c.ExpiresAt)
}

// IncrementAttempts no aplica tope: el contador sigue creciendo aunque el
// código ya no sea válido.
func (c *VerificationCode) IncrementAttempts() {
	c.Attempts++
}

func (c *VerificationCode) MarkUsed() {
	now := time.Now().UTC()
	c.IsUsed = true
	c.UsedAt = &now
}
