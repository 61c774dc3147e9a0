package models

import (
	"time"

	"gorm.io/gorm"
)

// RefreshToken es la sesión de un dispositivo: un registro por login.
type RefreshToken struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	User       User      `gorm:"constraint:OnDelete:CASCADE"`
	Token      string    `gorm:"uniqueIndex;not null;size:500"`
	ExpiresAt  time.Time `gorm:"index;not null"`
	DeviceName string    `gorm:"size:100"`
	DeviceType string    `gorm:"size:50"` // web, mobile, desktop
	IPAddress  string    `gorm:"size:45"`
	UserAgent  string    `gorm:"size:500"`
	IsRevoked  bool      `gorm:"index;not null;default:false"`
	RevokedAt  *time.Time
	LastUsedAt *time.Time
}

// IsValid: no revocado y todavía sin expirar.
func (t *RefreshToken) IsValid() bool {
	if t.IsRevoked {
		return false
	}
	return time.Now().UTC().Before(t.ExpiresAt)
}

// Revoke es idempotente: un token ya revocado conserva su RevokedAt original.
func (t *RefreshToken) Revoke() {
	if t.IsRevoked {
		return
	}
	now := time.Now().UTC()
	t.IsRevoked = true
	t.RevokedAt = &now
}

// Touch registra el último uso del token.
func (t *RefreshToken) Touch() {
	now := time.Now().UTC()
	t.LastUsedAt = &now
}
