package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstituteProfile is a copy of the owner/contact fields from the onboarding
// application, so the tenant stays independent of the application record.
type InstituteProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstituteID uuid.UUID `gorm:"not null;unique" json:"institute_id"`

	OwnerName      string `gorm:"size:255;not null" json:"owner_name"`
	Email          string `gorm:"size:255;not null" json:"email"`
	Mobile         string `gorm:"size:20;not null" json:"mobile"`
	MobileVerified bool   `gorm:"default:false" json:"mobile_verified"`

	Institute Institute `gorm:"foreignkey:InstituteID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *InstituteProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
