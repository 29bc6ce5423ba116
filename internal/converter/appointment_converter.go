package converter

import (
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// Patient name and payment details are included when the relations are loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		UserID:             appointment.UserID,
		PrimaryPhysician:   appointment.PrimaryPhysician,
		Schedule:           appointment.Schedule,
		Status:             string(appointment.Status),
		Reason:             appointment.Reason,
		Note:               appointment.Note,
		CancellationReason: appointment.CancellationReason,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if appointment.Patient.User.FullName != "" {
		response.PatientName = appointment.Patient.User.FullName
	}

	if appointment.Payment != nil {
		response.Payment = PaymentToResponse(appointment.Payment)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// PaymentToResponse converts a Payment entity to its DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		Method:    string(payment.Method),
		Amount:    payment.Amount.StringFixed(2),
		Reference: payment.Reference,
	}
}
