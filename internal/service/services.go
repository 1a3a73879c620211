package service

import (
	"github.com/dom/chateo-backend/internal/config"
	"github.com/dom/chateo-backend/internal/repository"
	"github.com/dom/chateo-backend/internal/sms"
	"go.uber.org/zap"
)

type Services struct {
	Verification *VerificationService
	Session      *SessionService
	Profile      *ProfileService
	User         *UserService
}

func NewServices(repos *repository.Repositories, sender sms.Sender, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Verification: NewVerificationService(repos.Verification, repos.User, sender, cfg, logger),
		Session:      NewSessionService(cfg),
		Profile:      NewProfileService(repos.User, repos.Verification, logger),
		User:         NewUserService(repos.User, logger),
	}
}
