package repository

import (
	"patient-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error)
}
