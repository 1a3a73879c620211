package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type verificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *verificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, attempt *domain.VerificationCode) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *verificationRepository) CountSince(ctx context.Context, phoneNumber string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.VerificationCode{}).
		Where("phone_number = ? AND created_at >= ?", phoneNumber, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// LatestActive returns the newest unverified, unexpired attempt for a
// phone number. Older rows are never considered for matching.
func (r *verificationRepository) LatestActive(ctx context.Context, phoneNumber string, now time.Time) (*domain.VerificationCode, error) {
	var attempt domain.VerificationCode
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND verified = ? AND expires_at > ?", phoneNumber, false, now).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *verificationRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.VerificationCode{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

func (r *verificationRepository) HasVerified(ctx context.Context, phoneNumber string) (bool, error) {
	var attempt domain.VerificationCode
	err := r.db.WithContext(ctx).
		Select("id").
		Where("phone_number = ? AND verified = ?", phoneNumber, true).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
