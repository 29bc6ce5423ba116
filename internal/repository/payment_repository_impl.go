package repository

import (
	"errors"

	"patient-appointment-service/internal/domain/entity"
	domainRepo "patient-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Where("appointment_id = ?", appointmentID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
