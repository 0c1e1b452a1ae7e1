package repository

import (
	"hotel-frontdesk/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OperatorRepository interface {
	Create(db *gorm.DB, operator *entity.Operator) error
	FindByEmail(db *gorm.DB, email string) (*entity.Operator, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Operator, error)
	Count(db *gorm.DB) (int64, error)
}
