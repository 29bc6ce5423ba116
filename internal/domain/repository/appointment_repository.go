package repository

import (
	"patient-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusCounts aggregates appointments per lifecycle state for the admin
// triage view.
type StatusCounts struct {
	Pending   int64
	Scheduled int64
	Cancelled int64
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	CountByStatus(db *gorm.DB) (*StatusCounts, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
}
