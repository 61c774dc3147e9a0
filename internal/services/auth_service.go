package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/models"
	"petcare-backend/internal/repository"
	"petcare-backend/pkg/security"
)

const (
	defaultCodeTTLMinutes  = 60
	defaultCodeMaxAttempts = 5
)

// DeviceInfo es la metadata opcional de la sesión que origina un token.
type DeviceInfo struct {
	Name      string
	Type      string
	IPAddress string
	UserAgent string
}

// LoginResult es el par de credenciales emitido tras autenticar.
type LoginResult struct {
	User             *models.User
	AccessToken      string
	AccessExpiresIn  int
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService orquesta el ciclo de vida de refresh tokens y códigos de
// verificación sobre CredentialStore, y compone el login con el directorio
// de usuarios, el hashing y la firma de tokens.
type AuthService struct {
	db         *gorm.DB
	store      *repository.CredentialStore
	users      *repository.UserRepository
	signer     *security.TokenSigner
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(db *gorm.DB, signer *security.TokenSigner, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		store:      repository.NewCredentialStore(db),
		users:      repository.NewUserRepository(db),
		signer:     signer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// ---- Refresh tokens ----

// IssueRefreshToken guarda un token opaco ya único aportado por el
// llamador. No re-chequea unicidad: una violación del índice llega como
// ErrConflict.
func (s *AuthService) IssueRefreshToken(fields repository.RefreshTokenFields) (*models.RefreshToken, error) {
	var token *models.RefreshToken
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		token, txErr = s.store.WithTx(tx).CreateRefreshToken(fields)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AuthService) GetRefreshToken(token string) (*models.RefreshToken, error) {
	return s.store.GetRefreshTokenByToken(token)
}

// RevokeRefreshToken pasa el token de Activo a Revocado. Revocar un token
// ya revocado no es error: la transición es un no-op que conserva el
// RevokedAt original.
func (s *AuthService) RevokeRefreshToken(token string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)
		rt, err := store.GetRefreshTokenByToken(token)
		if err != nil {
			return err
		}
		if rt.IsRevoked {
			return nil
		}
		rt.Revoke()
		return store.SaveRefreshToken(rt)
	})
}

func (s *AuthService) RevokeAllForUser(userID uint) (int64, error) {
	var count int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		count, txErr = s.store.WithTx(tx).RevokeAllForUser(userID)
		return txErr
	})
	return count, err
}

// CleanupExpiredRefreshTokens es mantenimiento periódico: solo toca filas
// ya vencidas, que de todos modos son inválidas para uso.
func (s *AuthService) CleanupExpiredRefreshTokens() (int64, error) {
	return s.store.DeleteExpiredRefreshTokens()
}

// ---- Códigos de verificación ----

// CreateVerificationCode crea un código nuevo. Con ttlMinutes o
// maxAttempts <= 0 se usan los valores por defecto (60 min, 5 intentos).
func (s *AuthService) CreateVerificationCode(userID uint, codeType string, ttlMinutes, maxAttempts int) (*models.VerificationCode, error) {
	if ttlMinutes <= 0 {
		ttlMinutes = defaultCodeTTLMinutes
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultCodeMaxAttempts
	}
	var code *models.VerificationCode
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		code, txErr = s.store.WithTx(tx).CreateVerificationCode(userID, codeType, ttlMinutes, maxAttempts)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return code, nil
}

// VerifyCode consume un intento contra el código. El intento se cobra y
// persiste ANTES de evaluar la validez: un intento contra un código
// vencido o agotado también cuenta, y el contador no se recorta en
// max_attempts. Devuelve (nil, nil) cuando la verificación falla — ese es
// un resultado de negocio esperado, no una falla. ErrNotFound significa
// que ese código nunca se emitió.
func (s *AuthService) VerifyCode(userID uint, code, codeType string) (*models.VerificationCode, error) {
	var verified *models.VerificationCode
	err := s.db.Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		vc, err := store.GetVerificationCode(userID, code, codeType)
		if err != nil {
			return err
		}

		if err := store.ChargeAttempt(vc); err != nil {
			return fmt.Errorf("cobrando intento: %w", err)
		}

		if !vc.IsValid() {
			return nil
		}

		ok, err := store.ConsumeVerificationCode(vc)
		if err != nil {
			return err
		}
		if !ok {
			// Otro verify concurrente lo consumió primero.
			return nil
		}
		verified = vc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}

func (s *AuthService) GetLatestCode(userID uint, codeType string) (*models.VerificationCode, error) {
	return s.store.GetLatestVerificationCode(userID, codeType)
}

func (s *AuthService) InvalidateCodes(userID uint, codeType string) (int64, error) {
	var count int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		count, txErr = s.store.WithTx(tx).InvalidateAllForUserAndType(userID, codeType)
		return txErr
	})
	return count, err
}

func (s *AuthService) CleanupExpiredVerificationCodes() (int64, error) {
	return s.store.DeleteExpiredVerificationCodes()
}

// ---- Login / refresh ----

// Login autentica por username con fallback a email. Usuario inexistente y
// contraseña incorrecta devuelven el mismo ErrUnauthorized: nada filtra si
// el identificador existe.
func (s *AuthService) Login(identifier, password string, device DeviceInfo) (*LoginResult, error) {
	user, err := s.users.GetByUsername(identifier)
	if errors.Is(err, apperrors.ErrNotFound) {
		user, err = s.users.GetByEmail(identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !security.CheckPassword(user.HashedPassword, password) {
		return nil, apperrors.ErrUnauthorized
	}

	if err := s.users.UpdateLastLogin(user.ID); err != nil {
		return nil, fmt.Errorf("actualizando last_login: %w", err)
	}

	return s.issuePair(user, device)
}

// Refresh rota el refresh token: revoca el presentado y emite un par
// nuevo. Un token revocado o vencido que se vuelve a presentar revoca
// todas las sesiones del usuario (detección de reutilización).
func (s *AuthService) Refresh(token string, device DeviceInfo) (*LoginResult, error) {
	rt, err := s.store.GetRefreshTokenByToken(token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !rt.IsValid() {
		if _, err := s.RevokeAllForUser(rt.UserID); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.users.GetByID(rt.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)
		rt.Revoke()
		rt.Touch()
		return store.SaveRefreshToken(rt)
	})
	if err != nil {
		return nil, err
	}

	return s.issuePair(user, device)
}

// Logout revoca el token presentado; un token desconocido no es error.
func (s *AuthService) Logout(token string) error {
	err := s.RevokeRefreshToken(token)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	return err
}

func (s *AuthService) issuePair(user *models.User, device DeviceInfo) (*LoginResult, error) {
	access, err := s.signer.Issue(strconv.FormatUint(uint64(user.ID), 10), s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("firmando access token: %w", err)
	}

	plain, err := security.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generando refresh token: %w", err)
	}

	rt, err := s.IssueRefreshToken(repository.RefreshTokenFields{
		UserID:     user.ID,
		Token:      plain,
		ExpiresAt:  time.Now().UTC().Add(s.refreshTTL),
		DeviceName: device.Name,
		DeviceType: device.Type,
		IPAddress:  device.IPAddress,
		UserAgent:  device.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:             user,
		AccessToken:      access,
		AccessExpiresIn:  int(s.accessTTL.Seconds()),
		RefreshToken:     plain,
		RefreshExpiresAt: rt.ExpiresAt,
	}, nil
}
