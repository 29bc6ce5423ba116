package repository

import (
	"context"
	"errors"
	"time"

	"patient-appointment-service/internal/domain/entity"
	domainRepo "patient-appointment-service/internal/domain/repository"

	"gorm.io/gorm"
)

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) domainRepo.VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Create(ctx context.Context, record *entity.VerificationCode) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *verificationCodeRepository) FindLiveByPhone(ctx context.Context, phone string, now time.Time) (*entity.VerificationCode, error) {
	var record entity.VerificationCode
	err := r.db.WithContext(ctx).
		Where("phone = ? AND expires_at > ?", phone, now).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *verificationCodeRepository) UpdateAttempts(ctx context.Context, id uint, attempts int) error {
	return r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("id = ?", id).
		Update("attempts", attempts).Error
}

func (r *verificationCodeRepository) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.VerificationCode{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

func (r *verificationCodeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.VerificationCode{}, id).Error
}

// DeleteByPhone removes every code for the phone, expired ones included, so a
// fresh send leaves exactly one live row behind.
func (r *verificationCodeRepository) DeleteByPhone(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Delete(&entity.VerificationCode{}).Error
}
