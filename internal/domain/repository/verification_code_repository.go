package repository

import (
	"context"
	"time"

	"patient-appointment-service/internal/domain/entity"
)

// VerificationCodeRepository handles one-time SMS code rows. Unlike the other
// repositories it is context-based and owns its database handle: the
// verification flow is behavior-heavy and unit-tested against this interface.
//
// "Live" means expires_at is after the supplied now; expired rows are
// invisible to every method except DeleteByPhone.
type VerificationCodeRepository interface {
	Create(ctx context.Context, record *entity.VerificationCode) error
	FindLiveByPhone(ctx context.Context, phone string, now time.Time) (*entity.VerificationCode, error)
	UpdateAttempts(ctx context.Context, id uint, attempts int) error
	MarkVerified(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	DeleteByPhone(ctx context.Context, phone string) error
}
