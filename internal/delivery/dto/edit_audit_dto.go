package dto

import (
	"time"

	"github.com/google/uuid"
)

type EditAuditResponse struct {
	ID         int64                  `json:"id"`
	OperatorID *uuid.UUID             `json:"operator_id,omitempty"`
	Operator   string                 `json:"operator,omitempty"`
	GuestName  string                 `json:"guest_name"`
	HotelName  string                 `json:"hotel_name"`
	CheckIn    string                 `json:"check_in"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type EditAuditListResponse struct {
	Audits []EditAuditResponse `json:"audits"`
	Total  int                 `json:"total"`
}
