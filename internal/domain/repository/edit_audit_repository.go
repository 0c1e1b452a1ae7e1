package repository

import (
	"hotel-frontdesk/internal/domain/entity"

	"gorm.io/gorm"
)

type EditAuditRepository interface {
	Create(db *gorm.DB, audit *entity.EditAudit) error
	FindAll(db *gorm.DB, limit int) ([]entity.EditAudit, error)
	FindByBooking(db *gorm.DB, guestName, hotelName, checkIn string) ([]entity.EditAudit, error)
}
