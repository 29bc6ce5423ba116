package repository

import (
	"patient-appointment-service/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(db *gorm.DB, name string) (*entity.Role, error)
}
