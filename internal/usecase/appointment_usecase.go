package usecase

import (
	"context"
	"errors"

	"patient-appointment-service/internal/converter"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/delivery/http/middleware"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/domain/repository"
	"patient-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrAppointmentNotOwned        = errors.New("appointment does not belong to you")
	ErrPatientProfileRequired     = errors.New("patient profile not found")
	ErrCancellationReasonRequired = errors.New("cancellation reason is required")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AdminAppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientProfileRepository
	doctorRepo      repository.DoctorRepository
	paymentRepo     repository.PaymentRepository
	paymentUsecase  PaymentUsecase
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorRepository,
	paymentRepo repository.PaymentRepository,
	paymentUsecase PaymentUsecase,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		paymentRepo:     paymentRepo,
		paymentUsecase:  paymentUsecase,
		auditService:    auditService,
	}
}

// CreateAppointment settles the (simulated) consultation fee and then persists
// the appointment in pending status together with its payment record. The fee
// comes from the physician's directory record, falling back to the default
// rate when the free-form name has no match.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	profile, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile for %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileRequired
	}

	rate := entity.DefaultRate
	doctor, err := u.doctorRepo.FindByName(u.db.WithContext(ctx), req.PrimaryPhysician)
	if err != nil {
		u.log.Warnf("Failed to look up physician rate for %q: %+v", req.PrimaryPhysician, err)
		return nil, err
	}
	if doctor != nil {
		rate = doctor.Rate
	}

	// Payment first: the appointment only exists once the fee is settled.
	payment, err := u.paymentUsecase.Process(ctx, req.Payment, rate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID:        profile.UserID,
		UserID:           userID,
		PrimaryPhysician: req.PrimaryPhysician,
		Schedule:         req.Schedule,
		Status:           entity.AppointmentStatusPending,
		Reason:           req.Reason,
		Note:             req.Note,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	payment.AppointmentID = appointment.ID
	if err := u.paymentRepo.Create(tx, payment); err != nil {
		u.log.Warnf("Failed to record payment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the transaction for audit log errors
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Payment = payment
	u.log.Infof("Appointment created: id=%s, physician=%s, ref=%s", appointment.ID, appointment.PrimaryPhysician, payment.Reference)
	return converter.AppointmentToResponse(appointment), nil
}

// UpdateAppointment applies a schedule or cancel action. There is no guard on
// the current status: the admin UI is the gate, and every transition lands in
// the audit trail.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	oldValue := converter.AppointmentToResponse(appointment)

	action, err := applyAppointmentUpdate(appointment, req)
	if err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	ctxUserID, _ := middleware.GetUserIDFromContext(ctx)
	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, &ctxUserID, action, "appointment", appointmentID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %s: id=%s, status=%s", req.Type, appointmentID, appointment.Status)
	return converter.AppointmentToResponse(appointment), nil
}

// applyAppointmentUpdate mutates the appointment per the request's type
// discriminator and returns the audit action taken.
func applyAppointmentUpdate(appointment *entity.Appointment, req *dto.UpdateAppointmentRequest) (string, error) {
	switch req.Type {
	case dto.AppointmentUpdateCancel:
		if req.CancellationReason == "" {
			return "", ErrCancellationReasonRequired
		}
		appointment.MarkCancelled(req.CancellationReason)
		return entity.AuditActionAppointmentCancel, nil
	default:
		if req.PrimaryPhysician != "" {
			appointment.PrimaryPhysician = req.PrimaryPhysician
		}
		if req.Schedule != nil {
			appointment.Schedule = *req.Schedule
		}
		appointment.MarkScheduled()
		return entity.AuditActionAppointmentSchedule, nil
	}
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	// Patients may only read their own appointments; admins read any.
	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID != entity.RoleIDAdmin {
		userID, ok := middleware.GetUserIDFromContext(ctx)
		if !ok || appointment.UserID != userID {
			return nil, ErrAppointmentNotOwned
		}
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// GetAllAppointments backs the admin triage board: full list newest-first with
// per-status counts.
func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AdminAppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	counts, err := u.appointmentRepo.CountByStatus(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to count appointments by status: %+v", err)
		return nil, err
	}

	return &dto.AdminAppointmentListResponse{
		Appointments:   converter.AppointmentsToResponses(appointments),
		Total:          len(appointments),
		PendingCount:   counts.Pending,
		ScheduledCount: counts.Scheduled,
		CancelledCount: counts.Cancelled,
	}, nil
}
