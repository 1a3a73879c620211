package domain

import (
	"time"

	"github.com/google/uuid"
)

type OnlineStatus string

const (
	StatusOnline  OnlineStatus = "ONLINE"
	StatusOffline OnlineStatus = "OFFLINE"
)

type User struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PhoneNumber     string       `json:"phoneNumber" gorm:"uniqueIndex;not null"`
	FirstName       string       `json:"firstName" gorm:"not null"`
	LastName        *string      `json:"lastName"`
	ProfileImageURL *string      `json:"profileImageUrl"`
	OnlineStatus    OnlineStatus `json:"onlineStatus" gorm:"not null;default:'OFFLINE'"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
