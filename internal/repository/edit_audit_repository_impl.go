package repository

import (
	"hotel-frontdesk/internal/domain/entity"
	domainRepo "hotel-frontdesk/internal/domain/repository"

	"gorm.io/gorm"
)

type editAuditRepository struct{}

func NewEditAuditRepository() domainRepo.EditAuditRepository {
	return &editAuditRepository{}
}

func (r *editAuditRepository) Create(db *gorm.DB, audit *entity.EditAudit) error {
	return db.Create(audit).Error
}

func (r *editAuditRepository) FindAll(db *gorm.DB, limit int) ([]entity.EditAudit, error) {
	var audits []entity.EditAudit
	err := db.Preload("Operator").Order("created_at DESC").Limit(limit).Find(&audits).Error
	if err != nil {
		return nil, err
	}
	return audits, nil
}

func (r *editAuditRepository) FindByBooking(db *gorm.DB, guestName, hotelName, checkIn string) ([]entity.EditAudit, error) {
	var audits []entity.EditAudit
	err := db.Preload("Operator").
		Where("guest_name = ? AND hotel_name = ? AND check_in = ?", guestName, hotelName, checkIn).
		Order("created_at DESC").
		Find(&audits).Error
	if err != nil {
		return nil, err
	}
	return audits, nil
}
