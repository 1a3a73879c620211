package postgres

import (
	"context"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "phone_number = ?", phoneNumber).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListExcluding(ctx context.Context, id uuid.UUID) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("first_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateOnlineStatus(ctx context.Context, id uuid.UUID, status domain.OnlineStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("online_status", status).Error
}
