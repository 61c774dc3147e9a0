package services

import (
	"fmt"

	"gorm.io/gorm"

	"petcare-backend/internal/models"
	"petcare-backend/internal/repository"
	"petcare-backend/pkg/security"
)

// UserUpdate es una actualización parcial: cada campo presente-o-ausente
// se aplica sobre el registro cargado.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
}

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repository.NewUserRepository(db)}
}

// Register crea un usuario nuevo; un username o email duplicado llega como
// ErrConflict desde la restricción única.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("procesando contraseña: %w", err)
	}
	user := models.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.users.GetByEmail(email)
}

func (s *UserService) List(offset, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.users.List(offset, limit)
}

// Update aplica los campos presentes campo a campo y persiste.
func (s *UserService) Update(id uint, update UserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	if update.Password != nil {
		hash, err := security.HashPassword(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("procesando contraseña: %w", err)
		}
		user.HashedPassword = hash
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	return s.users.Delete(id)
}

func (s *UserService) ChangePassword(id uint, newPassword string) error {
	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("procesando contraseña: %w", err)
	}
	return s.users.SetPasswordHash(id, hash)
}

// VerifyEmail marca el correo del usuario como verificado.
func (s *UserService) VerifyEmail(id uint) error {
	return s.users.MarkVerified(id)
}
