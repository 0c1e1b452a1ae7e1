package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hotel-frontdesk/internal/delivery/dto"
	"hotel-frontdesk/internal/delivery/http/middleware"
	"hotel-frontdesk/internal/usecase"
	"hotel-frontdesk/pkg/response"
	"hotel-frontdesk/pkg/validator"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, usecase.ErrOperatorInactive):
			response.Unauthorized(w, "Operator account is inactive")
		default:
			response.InternalServerError(w, "Failed to log in")
		}
		return
	}

	response.Success(w, http.StatusOK, "Logged in", session)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.sessionUsecase.Logout(r.Context(), operatorID, tokenID); err != nil {
		response.InternalServerError(w, "Failed to log out")
		return
	}

	response.Success(w, http.StatusOK, "Logged out", nil)
}

func (h *SessionHandler) CurrentOperator(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetOperatorIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	operator, err := h.sessionUsecase.CurrentOperator(r.Context(), operatorID)
	if err != nil {
		if errors.Is(err, usecase.ErrOperatorNotFound) {
			response.NotFound(w, "Operator not found")
			return
		}
		response.InternalServerError(w, "Failed to load operator")
		return
	}

	response.Success(w, http.StatusOK, "", operator)
}
