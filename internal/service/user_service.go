package service

import (
	"context"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/dom/chateo-backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListOthers returns every user except the given one, ordered by
// first name.
func (s *UserService) ListOthers(ctx context.Context, userID uuid.UUID) ([]*domain.User, error) {
	users, err := s.userRepo.ListExcluding(ctx, userID)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, ErrTransient
	}
	return users, nil
}

func (s *UserService) SetOnlineStatus(ctx context.Context, userID uuid.UUID, status domain.OnlineStatus) error {
	return s.userRepo.UpdateOnlineStatus(ctx, userID, status)
}
