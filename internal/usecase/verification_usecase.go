package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"patient-appointment-service/config"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/domain/repository"
	"patient-appointment-service/internal/infrastructure/sms"

	"github.com/sirupsen/logrus"
)

var (
	// ErrSendFailed hides whether storage or the SMS provider broke; callers
	// only learn that the code did not go out.
	ErrSendFailed = errors.New("failed to send verification code")

	// ErrCodeNotFound covers both "never sent" and "expired".
	ErrCodeNotFound = errors.New("verification code expired or not found")

	ErrTooManyAttempts = errors.New("too many verification attempts")
)

// CodeMismatchError reports a wrong code together with how many attempts the
// caller has left before the record is destroyed.
type CodeMismatchError struct {
	Remaining int
}

func (e *CodeMismatchError) Error() string {
	return fmt.Sprintf("incorrect code, %d attempts remaining", e.Remaining)
}

type VerificationUsecase interface {
	SendCode(ctx context.Context, phone string) error
	CheckCode(ctx context.Context, phone, code string) error
	IsVerified(ctx context.Context, phone string) (bool, error)
}

type verificationUsecase struct {
	log    *logrus.Logger
	repo   repository.VerificationCodeRepository
	sender sms.Sender
	cfg    config.VerificationConfig
	now    func() time.Time
}

func NewVerificationUsecase(
	log *logrus.Logger,
	repo repository.VerificationCodeRepository,
	sender sms.Sender,
	cfg config.VerificationConfig,
) VerificationUsecase {
	return &verificationUsecase{
		log:    log,
		repo:   repo,
		sender: sender,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SendCode issues a fresh code for the phone. Any previous code for the same
// number is destroyed first, so at most one live record exists per phone.
func (u *verificationUsecase) SendCode(ctx context.Context, phone string) error {
	if err := u.repo.DeleteByPhone(ctx, phone); err != nil {
		u.log.Warnf("Failed to invalidate previous codes for %s: %+v", phone, err)
		return ErrSendFailed
	}

	code, err := generateCode()
	if err != nil {
		u.log.Warnf("Failed to generate verification code: %+v", err)
		return ErrSendFailed
	}

	record := &entity.VerificationCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: u.now().Add(u.cfg.CodeTTL),
		Attempts:  0,
		Verified:  false,
	}
	if err := u.repo.Create(ctx, record); err != nil {
		u.log.Warnf("Failed to store verification code for %s: %+v", phone, err)
		return ErrSendFailed
	}

	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(u.cfg.CodeTTL.Minutes()))
	if err := u.sender.Send(ctx, phone, body); err != nil {
		u.log.Warnf("Failed to dispatch verification SMS to %s: %+v", phone, err)
		return ErrSendFailed
	}

	return nil
}

// CheckCode validates a submitted code against the live record for the phone.
//
// A record already flipped to verified answers success without touching the
// attempts counter, so re-checks are idempotent. Otherwise the attempt is
// counted before the code is compared: once the counter reaches the ceiling
// the record is deleted and the phone must restart verification, correct code
// or not.
//
// Concurrent checks for the same phone can race on the counter (last write
// wins); attempts may be undercounted but the ceiling check itself never is.
func (u *verificationUsecase) CheckCode(ctx context.Context, phone, code string) error {
	record, err := u.repo.FindLiveByPhone(ctx, phone, u.now())
	if err != nil {
		u.log.Warnf("Failed to look up verification code for %s: %+v", phone, err)
		return err
	}
	if record == nil {
		return ErrCodeNotFound
	}

	if record.Verified {
		return nil
	}

	attempts := record.Attempts + 1
	if attempts >= u.cfg.MaxAttempts {
		if err := u.repo.Delete(ctx, record.ID); err != nil {
			u.log.Warnf("Failed to delete exhausted verification code for %s: %+v", phone, err)
			return err
		}
		return ErrTooManyAttempts
	}

	if err := u.repo.UpdateAttempts(ctx, record.ID, attempts); err != nil {
		u.log.Warnf("Failed to persist attempt count for %s: %+v", phone, err)
		return err
	}

	if code != record.Code {
		return &CodeMismatchError{Remaining: u.cfg.MaxAttempts - attempts}
	}

	if err := u.repo.MarkVerified(ctx, record.ID); err != nil {
		u.log.Warnf("Failed to mark code verified for %s: %+v", phone, err)
		return err
	}

	return nil
}

// IsVerified reports whether the phone holds a live, verified record. Used to
// gate patient registration.
func (u *verificationUsecase) IsVerified(ctx context.Context, phone string) (bool, error) {
	record, err := u.repo.FindLiveByPhone(ctx, phone, u.now())
	if err != nil {
		u.log.Warnf("Failed to look up verification status for %s: %+v", phone, err)
		return false, err
	}
	return record != nil && record.Verified, nil
}

// generateCode returns a zero-padded 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
