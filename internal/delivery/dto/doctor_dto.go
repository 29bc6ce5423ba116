package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateDoctorRequest is populated from a multipart form; the optional image
// part is handled separately by the handler.
type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,e164"`
	Specialization string `json:"specialization" validate:"required,min=2"`
	Experience     string `json:"experience" validate:"omitempty"`
	Rate           string `json:"rate" validate:"omitempty"`
	Availability   string `json:"availability" validate:"required"` // "HH:MM - HH:MM"
}

// Response DTOs

type DoctorResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Specialization    string    `json:"specialization"`
	Experience        string    `json:"experience,omitempty"`
	Rate              string    `json:"rate"`
	AvailabilityStart time.Time `json:"availability_start"`
	AvailabilityEnd   time.Time `json:"availability_end"`
	ImageURL          string    `json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
