package converter

import (
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		Email:             doctor.Email,
		Phone:             doctor.Phone,
		Specialization:    doctor.Specialization,
		Experience:        doctor.Experience,
		Rate:              doctor.Rate.StringFixed(2),
		AvailabilityStart: doctor.AvailabilityStart,
		AvailabilityEnd:   doctor.AvailabilityEnd,
		ImageURL:          doctor.ImageURL,
		CreatedAt:         doctor.CreatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
