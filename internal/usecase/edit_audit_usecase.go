package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-frontdesk/internal/converter"
	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/internal/domain/repository"
)

const auditListLimit = 200

// EditAuditUsecase keeps and serves the trail of successful booking
// saves. It implements the panel usecase's EditRecorder.
type EditAuditUsecase interface {
	RecordEdit(ctx context.Context, operatorID *uuid.UUID, id entity.BookingIdentifier, before, after *entity.BookingRecord) error
	ListAll(ctx context.Context) (*dto.EditAuditListResponse, error)
	ListByBooking(ctx context.Context, id entity.BookingIdentifier) (*dto.EditAuditListResponse, error)
}

type editAuditUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.EditAuditRepository
}

func NewEditAuditUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.EditAuditRepository) EditAuditUsecase {
	return &editAuditUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *editAuditUsecase) RecordEdit(ctx context.Context, operatorID *uuid.UUID, id entity.BookingIdentifier, before, after *entity.BookingRecord) error {
	audit := &entity.EditAudit{
		OperatorID: operatorID,
		GuestName:  id.GuestName,
		HotelName:  id.HotelName,
		CheckIn:    id.CheckIn,
		Metadata: entity.JSON{
			"old_value": toJSONMap(before),
			"new_value": toJSONMap(after),
		},
	}

	if err := u.auditRepo.Create(u.db.WithContext(ctx), audit); err != nil {
		u.log.Warnf("Failed to create edit audit: %+v", err)
		return err
	}
	return nil
}

func (u *editAuditUsecase) ListAll(ctx context.Context) (*dto.EditAuditListResponse, error) {
	audits, err := u.auditRepo.FindAll(u.db.WithContext(ctx), auditListLimit)
	if err != nil {
		u.log.Warnf("Failed to list edit audits: %+v", err)
		return nil, err
	}

	return &dto.EditAuditListResponse{
		Audits: converter.EditAuditsToResponses(audits),
		Total:  len(audits),
	}, nil
}

func (u *editAuditUsecase) ListByBooking(ctx context.Context, id entity.BookingIdentifier) (*dto.EditAuditListResponse, error) {
	audits, err := u.auditRepo.FindByBooking(u.db.WithContext(ctx), id.GuestName, id.HotelName, id.CheckIn)
	if err != nil {
		u.log.Warnf("Failed to list edit audits for %q: %+v", id.GuestName, err)
		return nil, err
	}

	return &dto.EditAuditListResponse{
		Audits: converter.EditAuditsToResponses(audits),
		Total:  len(audits),
	}, nil
}

// toJSONMap flattens a record through its JSON form for JSONB storage.
func toJSONMap(record *entity.BookingRecord) map[string]interface{} {
	if record == nil {
		return nil
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
