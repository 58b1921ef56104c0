package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OtpVerification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ApplicationID uuid.UUID  `gorm:"not null;unique" json:"application_id"`
	Code          string     `gorm:"size:6;not null" json:"-"`
	ExpiresAt     time.Time  `gorm:"not null" json:"expires_at"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *OtpVerification) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
