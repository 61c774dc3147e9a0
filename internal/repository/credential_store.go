package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/models"
	"petcare-backend/pkg/security"
)

// CredentialStore persiste refresh tokens y códigos de verificación.
// Acceso a datos puro: la validez de un registro la decide la capa de
// servicio, no el store.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// WithTx devuelve un store ligado a la transacción dada.
func (s *CredentialStore) WithTx(tx *gorm.DB) *CredentialStore {
	return &CredentialStore{db: tx}
}

// RefreshTokenFields son los campos de creación de un refresh token.
// El llamador garantiza la unicidad del valor Token.
type RefreshTokenFields struct {
	UserID     uint
	Token      string
	ExpiresAt  time.Time
	DeviceName string
	DeviceType string
	IPAddress  string
	UserAgent  string
}

// CreateRefreshToken inserta sin pre-chequeo de duplicados: la unicidad la
// garantiza el índice único y una violación se traduce a ErrConflict.
func (s *CredentialStore) CreateRefreshToken(fields RefreshTokenFields) (*models.RefreshToken, error) {
	token := models.RefreshToken{
		UserID:     fields.UserID,
		Token:      fields.Token,
		ExpiresAt:  fields.ExpiresAt,
		DeviceName: fields.DeviceName,
		DeviceType: fields.DeviceType,
		IPAddress:  fields.IPAddress,
		UserAgent:  fields.UserAgent,
	}
	if err := s.db.Create(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("refresh token duplicado: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return &token, nil
}

func (s *CredentialStore) GetRefreshTokenByToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (s *CredentialStore) SaveRefreshToken(token *models.RefreshToken) error {
	return s.db.Save(token).Error
}

// RevokeAllForUser revoca todos los tokens vivos del usuario y devuelve
// cuántos fueron afectados.
func (s *CredentialStore) RevokeAllForUser(userID uint) (int64, error) {
	now := time.Now().UTC()
	res := s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Updates(map[string]interface{}{"is_revoked": true, "revoked_at": now})
	return res.RowsAffected, res.Error
}

// DeleteExpiredRefreshTokens borra (hard delete) las filas ya vencidas,
// revocadas o no.
func (s *CredentialStore) DeleteExpiredRefreshTokens() (int64, error) {
	res := s.db.Unscoped().
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

// CreateVerificationCode genera el valor del código (numérico, 6 dígitos)
// y lo persiste con expiración now + ttlMinutes.
func (s *CredentialStore) CreateVerificationCode(userID uint, codeType string, ttlMinutes, maxAttempts int) (*models.VerificationCode, error) {
	value, err := security.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generando código: %w", err)
	}
	code := models.VerificationCode{
		UserID:      userID,
		Code:        value,
		CodeType:    codeType,
		ExpiresAt:   time.Now().UTC().Add(time.Duration(ttlMinutes) * time.Minute),
		MaxAttempts: maxAttempts,
	}
	if err := s.db.Create(&code).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// GetVerificationCode busca por coincidencia exacta de los tres campos.
// No filtra por validez: eso lo decide el servicio.
func (s *CredentialStore) GetVerificationCode(userID uint, code, codeType string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := s.db.
		Where("user_id = ? AND code = ? AND code_type = ?", userID, code, codeType).
		First(&vc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &vc, nil
}

func (s *CredentialStore) GetLatestVerificationCode(userID uint, codeType string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := s.db.
		Where("user_id = ? AND code_type = ?", userID, codeType).
		Order("id DESC").
		First(&vc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &vc, nil
}

// ChargeAttempt incrementa attempts de forma atómica en el motor
// (attempts = attempts + 1) y recarga la fila. El incremento queda
// persistido aunque el código resulte inválido.
func (s *CredentialStore) ChargeAttempt(code *models.VerificationCode) error {
	err := s.db.Model(code).
		Update("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return err
	}
	return s.db.First(code, code.ID).Error
}

// ConsumeVerificationCode marca el código como usado, solo si nadie lo usó
// antes. Devuelve false si otro verify ganó la carrera.
func (s *CredentialStore) ConsumeVerificationCode(code *models.VerificationCode) (bool, error) {
	now := time.Now().UTC()
	res := s.db.Model(&models.VerificationCode{}).
		Where("id = ? AND is_used = ?", code.ID, false).
		Updates(map[string]interface{}{"is_used": true, "used_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	code.IsUsed = true
	code.UsedAt = &now
	return true, nil
}

// InvalidateAllForUserAndType marca como usados todos los códigos vigentes
// del usuario para ese tipo (flujos de reenvío / cambio de correo).
func (s *CredentialStore) InvalidateAllForUserAndType(userID uint, codeType string) (int64, error) {
	now := time.Now().UTC()
	res := s.db.Model(&models.VerificationCode{}).
		Where("user_id = ? AND code_type = ? AND is_used = ? AND expires_at > ?",
			userID, codeType, false, now).
		Updates(map[string]interface{}{"is_used": true, "used_at": now})
	return res.RowsAffected, res.Error
}

func (s *CredentialStore) DeleteExpiredVerificationCodes() (int64, error) {
	res := s.db.Unscoped().
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}
