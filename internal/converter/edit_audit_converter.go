package converter

import (
	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/domain/entity"
)

// EditAuditToResponse converts an EditAudit entity to its response DTO
func EditAuditToResponse(audit *entity.EditAudit) *dto.EditAuditResponse {
	if audit == nil {
		return nil
	}

	response := &dto.EditAuditResponse{
		ID:         audit.ID,
		OperatorID: audit.OperatorID,
		GuestName:  audit.GuestName,
		HotelName:  audit.HotelName,
		CheckIn:    audit.CheckIn,
		Metadata:   audit.Metadata,
		CreatedAt:  audit.CreatedAt,
	}

	if audit.Operator != nil {
		response.Operator = audit.Operator.FullName
	}

	return response
}

// EditAuditsToResponses converts a slice of entities to response DTOs
func EditAuditsToResponses(audits []entity.EditAudit) []dto.EditAuditResponse {
	responses := make([]dto.EditAuditResponse, len(audits))
	for i, audit := range audits {
		resp := EditAuditToResponse(&audit)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
