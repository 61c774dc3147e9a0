package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/models"
)

type ProfileCreate struct {
	Name     string
	Gender   string
	Variety  string
	Birthday *time.Time
}

type ProfileUpdate struct {
	Name     *string
	Gender   *string
	Variety  *string
	Birthday *time.Time
}

// ProfileService administra las fichas de mascotas.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Create(payload ProfileCreate) (*models.Profile, error) {
	profile := models.Profile{
		Name:     payload.Name,
		Gender:   payload.Gender,
		Variety:  payload.Variety,
		Birthday: payload.Birthday,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("perfil duplicado: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) GetByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) List(offset, limit int) ([]models.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var profiles []models.Profile
	err := s.db.Offset(offset).Limit(limit).Find(&profiles).Error
	return profiles, err
}

func (s *ProfileService) Update(id uint, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.Gender != nil {
		profile.Gender = *update.Gender
	}
	if update.Variety != nil {
		profile.Variety = *update.Variety
	}
	if update.Birthday != nil {
		profile.Birthday = update.Birthday
	}

	if err := s.db.Save(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("perfil duplicado: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Delete(id uint) error {
	res := s.db.Delete(&models.Profile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
