package usecase

import (
	"testing"
	"time"

	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingAppointment() *entity.Appointment {
	return &entity.Appointment{
		PrimaryPhysician: "Dr. Ada Osei",
		Schedule:         time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC),
		Status:           entity.AppointmentStatusPending,
		Reason:           "Annual checkup",
	}
}

func TestApplyAppointmentUpdateSchedule(t *testing.T) {
	appointment := pendingAppointment()

	action, err := applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type: dto.AppointmentUpdateSchedule,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AuditActionAppointmentSchedule, action)
	assert.True(t, appointment.IsScheduled())
	// Unpatched fields survive confirmation.
	assert.Equal(t, "Dr. Ada Osei", appointment.PrimaryPhysician)
}

func TestApplyAppointmentUpdateSchedulePatchesFields(t *testing.T) {
	appointment := pendingAppointment()
	newSchedule := time.Date(2026, time.April, 9, 14, 30, 0, 0, time.UTC)

	action, err := applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type:             dto.AppointmentUpdateSchedule,
		PrimaryPhysician: "Dr. Lena Brandt",
		Schedule:         &newSchedule,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AuditActionAppointmentSchedule, action)
	assert.Equal(t, "Dr. Lena Brandt", appointment.PrimaryPhysician)
	assert.Equal(t, newSchedule, appointment.Schedule)
}

func TestApplyAppointmentUpdateCancel(t *testing.T) {
	appointment := pendingAppointment()

	action, err := applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type:               dto.AppointmentUpdateCancel,
		CancellationReason: "Physician unavailable on that date",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AuditActionAppointmentCancel, action)
	assert.True(t, appointment.IsCancelled())
	assert.Equal(t, "Physician unavailable on that date", appointment.CancellationReason)
}

func TestApplyAppointmentUpdateCancelRequiresReason(t *testing.T) {
	appointment := pendingAppointment()

	_, err := applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type: dto.AppointmentUpdateCancel,
	})
	assert.ErrorIs(t, err, ErrCancellationReasonRequired)
	assert.True(t, appointment.IsPending())
}

func TestAppointmentScheduleThenCancelKeepsPatchedFields(t *testing.T) {
	appointment := pendingAppointment()
	newSchedule := time.Date(2026, time.April, 9, 14, 30, 0, 0, time.UTC)

	_, err := applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type:             dto.AppointmentUpdateSchedule,
		PrimaryPhysician: "Dr. Lena Brandt",
		Schedule:         &newSchedule,
	})
	require.NoError(t, err)
	require.True(t, appointment.IsScheduled())

	_, err = applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type:               dto.AppointmentUpdateCancel,
		CancellationReason: "conflict",
	})
	require.NoError(t, err)

	assert.True(t, appointment.IsCancelled())
	assert.Equal(t, "conflict", appointment.CancellationReason)
	// Cancellation does not disturb what the schedule step set.
	assert.Equal(t, "Dr. Lena Brandt", appointment.PrimaryPhysician)
	assert.Equal(t, newSchedule, appointment.Schedule)
}

func TestAppointmentLifecycle(t *testing.T) {
	appointment := pendingAppointment()

	// pending -> cancelled -> scheduled: rescheduling clears the stale reason
	// so a cancellation reason exists only on cancelled appointments.
	_, err := applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type:               dto.AppointmentUpdateCancel,
		CancellationReason: "Scheduling conflict",
	})
	require.NoError(t, err)
	assert.Equal(t, "Scheduling conflict", appointment.CancellationReason)

	_, err = applyAppointmentUpdate(appointment, &dto.UpdateAppointmentRequest{
		Type: dto.AppointmentUpdateSchedule,
	})
	require.NoError(t, err)

	assert.True(t, appointment.IsScheduled())
	assert.Empty(t, appointment.CancellationReason)
}
