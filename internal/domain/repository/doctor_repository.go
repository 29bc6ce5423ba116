package repository

import (
	"patient-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByName(db *gorm.DB, name string) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
