package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerificationCode is one SMS send attempt. Rows are never deleted;
// expiry is logical and a row stops matching once ExpiresAt passes.
type VerificationCode struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PhoneNumber string    `json:"phoneNumber" gorm:"index;not null"`
	CodeHash    string    `json:"-" gorm:"not null"`
	Verified    bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	ExpiresAt   time.Time `json:"expiresAt" gorm:"not null"`
}
