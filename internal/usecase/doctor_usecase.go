package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/converter"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/delivery/http/middleware"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/domain/repository"
	"patient-appointment-service/internal/infrastructure/storage"
	"patient-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDoctorNameExists    = errors.New("doctor name already exists")
	ErrInvalidAvailability = errors.New("availability must be in \"HH:MM - HH:MM\" format")
	ErrInvalidRate         = errors.New("rate must be a positive number")
)

// UploadedImage is an optional profile image accompanying doctor creation.
type UploadedImage struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest, image *UploadedImage) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	blobStore    storage.BlobStore
	auditService service.AuditService
	storageCfg   config.StorageConfig
	now          func() time.Time
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	blobStore storage.BlobStore,
	auditService service.AuditService,
	storageCfg config.StorageConfig,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		blobStore:    blobStore,
		auditService: auditService,
		storageCfg:   storageCfg,
		now:          time.Now,
	}
}

// CreateDoctor writes a directory record. The availability window is anchored
// to the creation date: "09:00 - 17:00" on day D becomes D 09:00 and D 17:00.
// Without an uploaded image the record points at the default placeholder.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest, image *UploadedImage) (*dto.DoctorResponse, error) {
	start, end, err := ParseAvailability(req.Availability, u.now())
	if err != nil {
		return nil, err
	}

	rate := entity.DefaultRate
	if req.Rate != "" {
		rate, err = decimal.NewFromString(req.Rate)
		if err != nil || rate.IsNegative() {
			return nil, ErrInvalidRate
		}
	}

	imageURL := u.storageCfg.DefaultImage
	if image != nil {
		imageURL, err = u.blobStore.Upload(ctx, image.FileName, image.ContentType, image.Content)
		if err != nil {
			u.log.Warnf("Failed to upload doctor image: %+v", err)
			return nil, err
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor := &entity.Doctor{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Specialization:    req.Specialization,
		Experience:        req.Experience,
		Rate:              rate,
		AvailabilityStart: start,
		AvailabilityEnd:   end,
		ImageURL:          imageURL,
	}
	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDoctorNameExists
		}
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), converter.DoctorToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Don't fail the transaction for audit log errors
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// DeleteDoctor removes the directory record. A non-placeholder image is
// deleted from blob storage afterwards; a failure there is logged and
// swallowed so the record deletion stands.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	oldValue := converter.DoctorToResponse(doctor)

	affectedRows, err := u.doctorRepo.Delete(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to delete doctor %s: %+v", doctorID, err)
		return err
	}
	if affectedRows == 0 {
		return ErrDoctorNotFound
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionDoctorDelete, "doctor", doctorID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if doctor.ImageURL != u.storageCfg.DefaultImage {
		if err := u.blobStore.Delete(ctx, doctor.ImageURL); err != nil {
			u.log.Warnf("Failed to delete doctor image %s (non-fatal): %+v", doctor.ImageURL, err)
		}
	}

	return nil
}

// ParseAvailability converts a "HH:MM - HH:MM" window into two timestamps on
// the given day, in the day's location.
func ParseAvailability(window string, day time.Time) (time.Time, time.Time, error) {
	parts := strings.Split(window, "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, ErrInvalidAvailability
	}

	start, err := parseClock(strings.TrimSpace(parts[0]), day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseClock(strings.TrimSpace(parts[1]), day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidAvailability
	}
	return start, end, nil
}

func parseClock(clock string, day time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidAvailability, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
