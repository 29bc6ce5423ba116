package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PrimaryPhysician string          `json:"primary_physician" validate:"required,min=2"`
	Schedule         time.Time       `json:"schedule" validate:"required"`
	Reason           string          `json:"reason" validate:"required,min=2"`
	Note             string          `json:"note" validate:"omitempty"`
	Payment          *PaymentRequest `json:"payment" validate:"required"`
}

// UpdateAppointmentRequest carries a type discriminator: "schedule" confirms
// the appointment, "cancel" cancels it and requires a cancellation reason.
type UpdateAppointmentRequest struct {
	Type               string     `json:"type" validate:"required,oneof=schedule cancel"`
	PrimaryPhysician   string     `json:"primary_physician" validate:"omitempty,min=2"`
	Schedule           *time.Time `json:"schedule" validate:"omitempty"`
	CancellationReason string     `json:"cancellation_reason" validate:"omitempty"`
}

// Update type discriminator values
const (
	AppointmentUpdateSchedule = "schedule"
	AppointmentUpdateCancel   = "cancel"
)

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID        `json:"id"`
	PatientID          uuid.UUID        `json:"patient_id"`
	UserID             uuid.UUID        `json:"user_id"`
	PatientName        string           `json:"patient_name,omitempty"`
	PrimaryPhysician   string           `json:"primary_physician"`
	Schedule           time.Time        `json:"schedule"`
	Status             string           `json:"status"`
	Reason             string           `json:"reason"`
	Note               string           `json:"note,omitempty"`
	CancellationReason string           `json:"cancellation_reason,omitempty"`
	Payment            *PaymentResponse `json:"payment,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AdminAppointmentListResponse adds per-status counts for the triage board.
type AdminAppointmentListResponse struct {
	Appointments   []AppointmentResponse `json:"appointments"`
	Total          int                   `json:"total"`
	PendingCount   int64                 `json:"pending_count"`
	ScheduledCount int64                 `json:"scheduled_count"`
	CancelledCount int64                 `json:"cancelled_count"`
}
