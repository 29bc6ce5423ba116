package dto

import (
	"time"

	"github.com/google/uuid"
)

type PatientProfileResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Address     string    `json:"address,omitempty"`
}
