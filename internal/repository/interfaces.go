package repository

import (
	"context"
	"time"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error)
	ListExcluding(ctx context.Context, id uuid.UUID) ([]*domain.User, error)
	UpdateOnlineStatus(ctx context.Context, id uuid.UUID, status domain.OnlineStatus) error
}

type VerificationRepository interface {
	Create(ctx context.Context, attempt *domain.VerificationCode) error
	CountSince(ctx context.Context, phoneNumber string, since time.Time) (int64, error)
	LatestActive(ctx context.Context, phoneNumber string, now time.Time) (*domain.VerificationCode, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	HasVerified(ctx context.Context, phoneNumber string) (bool, error)
}

type Repositories struct {
	User         UserRepository
	Verification VerificationRepository
}
