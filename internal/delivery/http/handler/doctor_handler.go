package handler

import (
	"errors"
	"net/http"

	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/infrastructure/storage"
	"patient-appointment-service/internal/usecase"
	"patient-appointment-service/pkg/response"
	"patient-appointment-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxDoctorFormMemory bounds how much of the multipart form is held in memory.
const maxDoctorFormMemory = 10 << 20

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// CreateDoctor handles adding a doctor to the directory
// @Summary Create doctor
// @Description Add a doctor to the directory. Accepts a multipart form with an optional image part.
// @Tags Doctors
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors [post]
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDoctorFormMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.CreateDoctorRequest{
		Name:           r.FormValue("name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		Specialization: r.FormValue("specialization"),
		Experience:     r.FormValue("experience"),
		Rate:           r.FormValue("rate"),
		Availability:   r.FormValue("availability"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	var image *usecase.UploadedImage
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		image = &usecase.UploadedImage{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     file,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		response.Error(w, http.StatusBadRequest, "Invalid image upload", nil)
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctor(r.Context(), &req, image)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNameExists):
			response.Conflict(w, "Doctor name already exists")
		case errors.Is(err, usecase.ErrInvalidAvailability),
			errors.Is(err, usecase.ErrInvalidRate),
			errors.Is(err, storage.ErrFileTooLarge),
			errors.Is(err, storage.ErrInvalidContentType),
			errors.Is(err, storage.ErrMissingFileName):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// GetDoctor handles getting a single doctor
// @Summary Get doctor
// @Description Get a doctor's directory record
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAllDoctors handles listing the doctor directory
// @Summary List doctors
// @Description List all doctors in the directory, newest first
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// DeleteDoctor handles removing a doctor from the directory
// @Summary Delete doctor
// @Description Remove a doctor from the directory and clean up its stored image
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}
