package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/delivery/http/middleware"
	"hotel-frontdesk/internal/usecase"
	"hotel-frontdesk/pkg/response"
	"hotel-frontdesk/pkg/validator"
)

type BookingPanelHandler struct {
	panelUsecase usecase.BookingPanelUsecase
	validator    *validator.CustomValidator
}

func NewBookingPanelHandler(panelUsecase usecase.BookingPanelUsecase, validator *validator.CustomValidator) *BookingPanelHandler {
	return &BookingPanelHandler{
		panelUsecase: panelUsecase,
		validator:    validator,
	}
}

func (h *BookingPanelHandler) OpenPanel(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenPanelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	state, err := h.panelUsecase.Open(r.Context(), req.Identifier())
	if err != nil {
		response.InternalServerError(w, "Failed to open panel")
		return
	}

	response.Success(w, http.StatusCreated, "Panel opened", state)
}

func (h *BookingPanelHandler) GetPanel(w http.ResponseWriter, r *http.Request) {
	panelID, ok := h.panelID(w, r)
	if !ok {
		return
	}

	state, err := h.panelUsecase.Get(panelID)
	if err != nil {
		h.mapError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "", state)
}

func (h *BookingPanelHandler) RetryLoad(w http.ResponseWriter, r *http.Request) {
	panelID, ok := h.panelID(w, r)
	if !ok {
		return
	}

	state, err := h.panelUsecase.Retry(r.Context(), panelID)
	if err != nil {
		h.mapError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "", state)
}

func (h *BookingPanelHandler) EnterEdit(w http.ResponseWriter, r *http.Request) {
	panelID, ok := h.panelID(w, r)
	if !ok {
		return
	}

	state, err := h.panelUsecase.EnterEdit(panelID)
	if err != nil {
		h.mapError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Edit mode entered", state)
}

func (h *BookingPanelHandler) Submit(w http.ResponseWriter, r *http.Request) {
	panelID, ok := h.panelID(w, r)
	if !ok {
		return
	}

	var draft dto.EditDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	var operatorID *uuid.UUID
	if id, ok := middleware.GetOperatorIDFromContext(r.Context()); ok {
		operatorID = &id
	}

	result, err := h.panelUsecase.Submit(r.Context(), panelID, &draft, operatorID)
	if err != nil {
		var validationErr *usecase.DraftValidationError
		if errors.As(err, &validationErr) {
			response.ValidationError(w, validationErr.Fields)
			return
		}
		switch {
		case errors.Is(err, usecase.ErrPanelNotFound):
			response.NotFound(w, "Panel not found")
		case errors.Is(err, usecase.ErrSaveInFlight):
			response.Conflict(w, "A save is already in progress")
		case errors.Is(err, usecase.ErrNotEditMode):
			response.Conflict(w, "Panel is not in edit mode")
		default:
			// Save failed upstream: the draft is preserved, the caller
			// may retry.
			response.Error(w, http.StatusBadGateway, err.Error(), nil)
		}
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *BookingPanelHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	panelID, ok := h.panelID(w, r)
	if !ok {
		return
	}

	state, err := h.panelUsecase.Cancel(panelID)
	if err != nil {
		h.mapError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Edit cancelled", state)
}

type closePanelRequest struct {
	Force bool `json:"force"`
}

func (h *BookingPanelHandler) ClosePanel(w http.ResponseWriter, r *http.Request) {
	panelID, ok := h.panelID(w, r)
	if !ok {
		return
	}

	var req closePanelRequest
	if r.Body != nil {
		// Body is optional; absent means no force.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.panelUsecase.Close(panelID, req.Force); err != nil {
		h.mapError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Panel closed", nil)
}

func (h *BookingPanelHandler) panelID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	vars := mux.Vars(r)
	panelID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid panel ID", nil)
		return uuid.Nil, false
	}
	return panelID, true
}

func (h *BookingPanelHandler) mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrPanelNotFound):
		response.NotFound(w, "Panel not found")
	case errors.Is(err, usecase.ErrFetchInFlight):
		response.Conflict(w, "A fetch is already in progress")
	case errors.Is(err, usecase.ErrSaveInFlight):
		response.Conflict(w, "A save is already in progress")
	case errors.Is(err, usecase.ErrNotViewMode):
		response.Conflict(w, "Panel is not in view mode")
	case errors.Is(err, usecase.ErrNotEditMode):
		response.Conflict(w, "Panel is not in edit mode")
	case errors.Is(err, usecase.ErrNotLoadError):
		response.Conflict(w, "Panel has no failed load to retry")
	case errors.Is(err, usecase.ErrUnsavedChanges):
		response.Conflict(w, "Panel has unsaved changes; pass force to discard them")
	default:
		response.InternalServerError(w, "")
	}
}
