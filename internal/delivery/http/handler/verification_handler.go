package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/usecase"
	"patient-appointment-service/pkg/response"
	"patient-appointment-service/pkg/validator"
)

type VerificationHandler struct {
	verificationUsecase usecase.VerificationUsecase
	validator           *validator.CustomValidator
}

func NewVerificationHandler(verificationUsecase usecase.VerificationUsecase, validator *validator.CustomValidator) *VerificationHandler {
	return &VerificationHandler{
		verificationUsecase: verificationUsecase,
		validator:           validator,
	}
}

// SendCode handles sending a verification code via SMS
// @Summary Send verification code
// @Description Send a 6-digit verification code to the given phone number. Replaces any previous code for that number.
// @Tags Verification
// @Accept json
// @Produce json
// @Param request body dto.SendCodeRequest true "Send Code Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /verification/send-code [post]
func (h *VerificationHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req dto.SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.verificationUsecase.SendCode(r.Context(), req.Phone); err != nil {
		response.InternalServerError(w, "Failed to send verification code")
		return
	}

	response.Success(w, http.StatusOK, "Verification code sent", nil)
}

// CheckCode handles checking a submitted verification code
// @Summary Check verification code
// @Description Verify a phone number with the code received via SMS
// @Tags Verification
// @Accept json
// @Produce json
// @Param request body dto.CheckCodeRequest true "Check Code Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /verification/check-code [post]
func (h *VerificationHandler) CheckCode(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.verificationUsecase.CheckCode(r.Context(), req.Phone, req.Code)
	if err != nil {
		var mismatch *usecase.CodeMismatchError
		switch {
		case errors.Is(err, usecase.ErrCodeNotFound):
			response.NotFound(w, "Verification code expired or not found")
		case errors.Is(err, usecase.ErrTooManyAttempts):
			response.Error(w, http.StatusTooManyRequests, "Too many attempts, request a new code", nil)
		case errors.As(err, &mismatch):
			response.Error(w, http.StatusBadRequest, mismatch.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to check verification code")
		}
		return
	}

	response.Success(w, http.StatusOK, "Phone number verified", &dto.VerificationStatusResponse{
		Phone:    req.Phone,
		Verified: true,
	})
}
