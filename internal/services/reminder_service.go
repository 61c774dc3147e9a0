package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/models"
)

type ReminderCreate struct {
	Title       string
	Type        string
	DueDate     time.Time
	Description string
	ProfileID   uint
}

type ReminderUpdate struct {
	Title       *string
	Type        *string
	DueDate     *time.Time
	IsDone      *bool
	Description *string
}

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// Create valida que el perfil exista antes de colgar el recordatorio.
func (s *ReminderService) Create(payload ReminderCreate) (*models.Reminder, error) {
	var profile models.Profile
	if err := s.db.First(&profile, payload.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	reminder := models.Reminder{
		Title:       payload.Title,
		Type:        payload.Type,
		DueDate:     payload.DueDate,
		Description: payload.Description,
		ProfileID:   payload.ProfileID,
	}
	if err := s.db.Create(&reminder).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) GetByID(id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.db.First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) List(offset, limit int) ([]models.Reminder, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var reminders []models.Reminder
	err := s.db.Offset(offset).Limit(limit).Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) ListByProfile(profileID uint) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.Where("profile_id = ?", profileID).Order("due_date").Find(&reminders).Error
	return reminders, err
}

// ListDueBefore devuelve los recordatorios pendientes con vencimiento
// anterior al instante dado (alimenta el feed de websocket).
func (s *ReminderService) ListDueBefore(deadline time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.
		Where("is_done = ? AND due_date <= ?", false, deadline).
		Order("due_date").
		Find(&reminders).Error
	return reminders, err
}

func (s *ReminderService) Update(id uint, update ReminderUpdate) (*models.Reminder, error) {
	reminder, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		reminder.Title = *update.Title
	}
	if update.Type != nil {
		reminder.Type = *update.Type
	}
	if update.DueDate != nil {
		reminder.DueDate = *update.DueDate
	}
	if update.IsDone != nil {
		reminder.IsDone = *update.IsDone
	}
	if update.Description != nil {
		reminder.Description = *update.Description
	}

	if err := s.db.Save(reminder).Error; err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Delete(id uint) error {
	res := s.db.Delete(&models.Reminder{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
