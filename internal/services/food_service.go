package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petcare-backend/internal/apperrors"
	"petcare-backend/internal/models"
)

type FoodCreate struct {
	Name        string
	Brand       string
	KcalsPerG   *float64
	Price       *float64
	Weight      *float64
	Description string
}

type FoodUpdate struct {
	Name        *string
	Brand       *string
	KcalsPerG   *float64
	Price       *float64
	Weight      *float64
	Description *string
}

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

func (s *FoodService) Create(payload FoodCreate) (*models.Food, error) {
	food := models.Food{
		Name:        payload.Name,
		Brand:       payload.Brand,
		KcalsPerG:   payload.KcalsPerG,
		Price:       payload.Price,
		Weight:      payload.Weight,
		Description: payload.Description,
	}
	if err := s.db.Create(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("alimento duplicado: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) GetByID(id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) List(offset, limit int) ([]models.Food, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var foods []models.Food
	err := s.db.Offset(offset).Limit(limit).Find(&foods).Error
	return foods, err
}

func (s *FoodService) Update(id uint, update FoodUpdate) (*models.Food, error) {
	food, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		food.Name = *update.Name
	}
	if update.Brand != nil {
		food.Brand = *update.Brand
	}
	if update.KcalsPerG != nil {
		food.KcalsPerG = update.KcalsPerG
	}
	if update.Price != nil {
		food.Price = update.Price
	}
	if update.Weight != nil {
		food.Weight = update.Weight
	}
	if update.Description != nil {
		food.Description = *update.Description
	}

	if err := s.db.Save(food).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("alimento duplicado: %w", apperrors.ErrConflict)
		}
		return nil, err
	}
	return food, nil
}

func (s *FoodService) Delete(id uint) error {
	res := s.db.Delete(&models.Food{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
