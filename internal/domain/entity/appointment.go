package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a patient consultation request with a physician.
// PrimaryPhysician is free-form text; when it matches a directory record the
// doctor's rate drives the consultation fee.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	UserID             uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	PrimaryPhysician   string            `gorm:"type:varchar(255);not null" json:"primary_physician"`
	Schedule           time.Time         `gorm:"not null;index" json:"schedule"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reason             string            `gorm:"type:text;not null" json:"reason"`
	Note               string            `gorm:"type:text" json:"note,omitempty"`
	CancellationReason string            `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Payment *Payment       `gorm:"foreignKey:AppointmentID" json:"payment,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if appointment is awaiting triage
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsScheduled checks if appointment has been confirmed by an admin
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// MarkScheduled confirms the appointment and clears any stale cancellation
// reason so the reason is populated iff the status is cancelled.
func (a *Appointment) MarkScheduled() {
	a.Status = AppointmentStatusScheduled
	a.CancellationReason = ""
}

// MarkCancelled cancels the appointment with the given reason
func (a *Appointment) MarkCancelled(reason string) {
	a.Status = AppointmentStatusCancelled
	a.CancellationReason = reason
}
