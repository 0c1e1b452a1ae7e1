package handler

import (
	"net/http"

	"hotel-frontdesk/internal/domain/entity"
	"hotel-frontdesk/internal/usecase"
	"hotel-frontdesk/pkg/response"
)

type EditAuditHandler struct {
	auditUsecase usecase.EditAuditUsecase
}

func NewEditAuditHandler(auditUsecase usecase.EditAuditUsecase) *EditAuditHandler {
	return &EditAuditHandler{auditUsecase: auditUsecase}
}

// ListAudits returns recent booking edits; when all three identifier
// query parameters are present the list is scoped to that booking.
func (h *EditAuditHandler) ListAudits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	guestName := query.Get("guestName")
	hotelName := query.Get("hotelName")
	checkIn := query.Get("checkIn")

	var err error
	var audits interface{}
	if guestName != "" && hotelName != "" && checkIn != "" {
		audits, err = h.auditUsecase.ListByBooking(r.Context(), entity.BookingIdentifier{
			GuestName: guestName,
			HotelName: hotelName,
			CheckIn:   checkIn,
		})
	} else {
		audits, err = h.auditUsecase.ListAll(r.Context())
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list edit audits")
		return
	}

	response.Success(w, http.StatusOK, "", audits)
}
