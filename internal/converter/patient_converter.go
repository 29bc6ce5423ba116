package converter

import (
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
)

// PatientProfileToResponse converts a PatientProfile entity to its DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		UserID:      profile.UserID,
		Phone:       profile.Phone,
		DateOfBirth: profile.DateOfBirth,
		Gender:      profile.Gender,
		Address:     profile.Address,
	}
}
