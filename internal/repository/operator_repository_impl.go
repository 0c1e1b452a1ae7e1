package repository

import (
	"hotel-frontdesk/internal/domain/entity"
	domainRepo "hotel-frontdesk/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type operatorRepository struct{}

func NewOperatorRepository() domainRepo.OperatorRepository {
	return &operatorRepository{}
}

func (r *operatorRepository) Create(db *gorm.DB, operator *entity.Operator) error {
	return db.Create(operator).Error
}

func (r *operatorRepository) FindByEmail(db *gorm.DB, email string) (*entity.Operator, error) {
	var operator entity.Operator
	err := db.Where("email = ?", email).First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Operator, error) {
	var operator entity.Operator
	err := db.Where("id = ?", id).First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Operator{}).Count(&count).Error
	return count, err
}
