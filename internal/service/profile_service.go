package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/dom/chateo-backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxNameLength = 50

var (
	ErrFirstNameRequired = errors.New("first name is required")
	ErrFirstNameTooLong  = errors.New("first name too long")
	ErrLastNameTooLong   = errors.New("last name too long")
	ErrPhoneNotVerified  = errors.New("phone number not verified")
	ErrAccountExists     = errors.New("account already exists")
)

type ProfileService struct {
	userRepo         repository.UserRepository
	verificationRepo repository.VerificationRepository
	logger           *zap.Logger
}

func NewProfileService(
	userRepo repository.UserRepository,
	verificationRepo repository.VerificationRepository,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		logger:           logger,
	}
}

type CreateProfileInput struct {
	PhoneNumber string
	FirstName   string
	LastName    *string
}

// CreateProfile creates the one and only user record for a verified
// phone number. Validation runs before any I/O; the verified-attempt
// check runs before the account-existence check.
func (s *ProfileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.User, error) {
	phone := strings.TrimSpace(input.PhoneNumber)
	firstName := strings.TrimSpace(input.FirstName)

	var lastName *string
	if input.LastName != nil {
		trimmed := strings.TrimSpace(*input.LastName)
		if trimmed != "" {
			lastName = &trimmed
		}
	}

	if !domain.IsValidE164(phone) {
		return nil, ErrInvalidPhone
	}
	if firstName == "" {
		return nil, ErrFirstNameRequired
	}
	if utf8.RuneCountInString(firstName) > maxNameLength {
		return nil, ErrFirstNameTooLong
	}
	if lastName != nil && utf8.RuneCountInString(*lastName) > maxNameLength {
		return nil, ErrLastNameTooLong
	}

	verified, err := s.verificationRepo.HasVerified(ctx, phone)
	if err != nil {
		s.logger.Error("look up verified attempt failed", zap.Error(err))
		return nil, ErrTransient
	}
	if !verified {
		return nil, ErrPhoneNotVerified
	}

	existing, err := s.userRepo.GetByPhoneNumber(ctx, phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("look up user by phone failed", zap.Error(err))
		return nil, ErrTransient
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		PhoneNumber:  phone,
		FirstName:    firstName,
		LastName:     lastName,
		OnlineStatus: domain.StatusOffline,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, ErrTransient
	}

	return user, nil
}
