package converter

import (
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Includes the patient profile if it is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.PatientProfile != nil {
		response.PatientProfile = PatientProfileToResponse(user.PatientProfile)
	}

	return response
}
