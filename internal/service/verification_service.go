package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dom/chateo-backend/internal/config"
	"github.com/dom/chateo-backend/internal/domain"
	"github.com/dom/chateo-backend/internal/repository"
	"github.com/dom/chateo-backend/internal/sms"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidPhone         = errors.New("invalid phone number format")
	ErrInvalidCode          = errors.New("invalid code format")
	ErrRateLimited          = errors.New("too many attempts")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")

	// ErrTransient stands in for any storage or delivery failure.
	// The underlying cause is logged, never returned.
	ErrTransient = errors.New("transient failure")
)

type VerificationService struct {
	verificationRepo repository.VerificationRepository
	userRepo         repository.UserRepository
	sender           sms.Sender
	cfg              *config.Config
	logger           *zap.Logger
}

func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	userRepo repository.UserRepository,
	sender sms.Sender,
	cfg *config.Config,
	logger *zap.Logger,
) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		cfg:              cfg,
		logger:           logger,
	}
}

type CheckResult struct {
	ExistingUser bool
	User         *domain.User
}

// RequestCode creates a pending verification attempt and delivers its
// code. It deliberately does not check whether the phone belongs to a
// registered user, so success reveals nothing about account existence.
func (s *VerificationService) RequestCode(ctx context.Context, phoneNumber string) error {
	phone := strings.TrimSpace(phoneNumber)
	if !domain.IsValidE164(phone) {
		return ErrInvalidPhone
	}

	windowStart := time.Now().Add(-s.cfg.RateLimitWindow)
	count, err := s.verificationRepo.CountSince(ctx, phone, windowStart)
	if err != nil {
		s.logger.Error("count verification attempts failed", zap.Error(err))
		return ErrTransient
	}
	if count >= int64(s.cfg.MaxCodesPerWindow) {
		return ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("generate verification code failed", zap.Error(err))
		return ErrTransient
	}

	codeHash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash verification code failed", zap.Error(err))
		return ErrTransient
	}

	now := time.Now()
	attempt := &domain.VerificationCode{
		ID:          uuid.New(),
		PhoneNumber: phone,
		CodeHash:    string(codeHash),
		Verified:    false,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.cfg.CodeExpiry),
	}
	if err := s.verificationRepo.Create(ctx, attempt); err != nil {
		s.logger.Error("create verification attempt failed", zap.Error(err))
		return ErrTransient
	}

	expiryMinutes := int(s.cfg.CodeExpiry.Minutes())
	body := fmt.Sprintf("Your Chateo verification code is: %s. It expires in %d minutes.", code, expiryMinutes)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		s.logger.Error("send verification sms failed", zap.Error(err))
		return ErrTransient
	}

	return nil
}

// ResendCode is a fresh send against the same window-scoped counter;
// resends consume the same quota as initial sends.
func (s *VerificationService) ResendCode(ctx context.Context, phoneNumber string) error {
	return s.RequestCode(ctx, phoneNumber)
}

// CheckCode compares the submitted code against the most recent
// unverified, unexpired attempt for the phone and marks that attempt
// verified on a match. A failed check never mutates stored attempts.
func (s *VerificationService) CheckCode(ctx context.Context, phoneNumber, code string) (*CheckResult, error) {
	phone := strings.TrimSpace(phoneNumber)
	trimmedCode := strings.TrimSpace(code)

	if !domain.IsValidE164(phone) {
		return nil, ErrInvalidPhone
	}
	if !domain.IsValidOTP(trimmedCode) {
		return nil, ErrInvalidCode
	}

	attempt, err := s.verificationRepo.LatestActive(ctx, phone, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidOrExpiredCode
		}
		s.logger.Error("load verification attempt failed", zap.Error(err))
		return nil, ErrTransient
	}

	if bcrypt.CompareHashAndPassword([]byte(attempt.CodeHash), []byte(trimmedCode)) != nil {
		return nil, ErrInvalidOrExpiredCode
	}

	if err := s.verificationRepo.MarkVerified(ctx, attempt.ID); err != nil {
		s.logger.Error("mark attempt verified failed", zap.Error(err))
		return nil, ErrTransient
	}

	user, err := s.userRepo.GetByPhoneNumber(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckResult{ExistingUser: false}, nil
		}
		s.logger.Error("look up user by phone failed", zap.Error(err))
		return nil, ErrTransient
	}

	return &CheckResult{ExistingUser: true, User: user}, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
