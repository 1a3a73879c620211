package testutil

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/dom/chateo-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	phoneNumber string
	firstName   string
	lastName    *string
	status      domain.OnlineStatus
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		phoneNumber: fmt.Sprintf("+1555%07d", rand.Intn(10000000)),
		firstName:   "Test",
		status:      domain.StatusOffline,
	}
}

// WithPhoneNumber sets the phone number
func (b *UserBuilder) WithPhoneNumber(phone string) *UserBuilder {
	b.phoneNumber = phone
	return b
}

// WithFirstName sets the first name
func (b *UserBuilder) WithFirstName(name string) *UserBuilder {
	b.firstName = name
	return b
}

// WithLastName sets the last name
func (b *UserBuilder) WithLastName(name string) *UserBuilder {
	b.lastName = &name
	return b
}

// WithOnlineStatus sets the online status
func (b *UserBuilder) WithOnlineStatus(status domain.OnlineStatus) *UserBuilder {
	b.status = status
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:           uuid.New(),
		PhoneNumber:  b.phoneNumber,
		FirstName:    b.firstName,
		LastName:     b.lastName,
		OnlineStatus: b.status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// VerificationBuilder creates verification attempts with a builder pattern
type VerificationBuilder struct {
	phoneNumber string
	code        string
	verified    bool
	createdAt   time.Time
	expiresAt   time.Time
}

// NewVerificationBuilder creates a new VerificationBuilder with default values
func NewVerificationBuilder() *VerificationBuilder {
	now := time.Now()
	return &VerificationBuilder{
		phoneNumber: "+12125551234",
		code:        "123456",
		createdAt:   now,
		expiresAt:   now.Add(10 * time.Minute),
	}
}

// WithPhoneNumber sets the phone number
func (b *VerificationBuilder) WithPhoneNumber(phone string) *VerificationBuilder {
	b.phoneNumber = phone
	return b
}

// WithCode sets the plaintext code; the builder stores its hash
func (b *VerificationBuilder) WithCode(code string) *VerificationBuilder {
	b.code = code
	return b
}

// Verified marks the attempt as already confirmed
func (b *VerificationBuilder) Verified() *VerificationBuilder {
	b.verified = true
	return b
}

// WithCreatedAt sets the creation time
func (b *VerificationBuilder) WithCreatedAt(at time.Time) *VerificationBuilder {
	b.createdAt = at
	return b
}

// Expired backdates the attempt past its expiry window
func (b *VerificationBuilder) Expired() *VerificationBuilder {
	b.createdAt = time.Now().Add(-20 * time.Minute)
	b.expiresAt = time.Now().Add(-10 * time.Minute)
	return b
}

// Build creates the attempt in the database and returns it with the raw code
func (b *VerificationBuilder) Build(t *testing.T, db *gorm.DB) (*domain.VerificationCode, string) {
	t.Helper()

	codeHash, err := bcrypt.GenerateFromPassword([]byte(b.code), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}

	attempt := &domain.VerificationCode{
		ID:          uuid.New(),
		PhoneNumber: b.phoneNumber,
		CodeHash:    string(codeHash),
		Verified:    b.verified,
		CreatedAt:   b.createdAt,
		ExpiresAt:   b.expiresAt,
	}

	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("failed to create verification attempt: %v", err)
	}

	return attempt, b.code
}
