package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InstituteKindSchool   = "school"
	InstituteKindCoaching = "coaching"
	InstituteKindBoth     = "both"
)

type OnboardingApplication struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstituteName string    `gorm:"size:255;not null" json:"institute_name"`
	InstituteKind string    `gorm:"size:20;not null" json:"institute_kind"`
	OwnerName     string    `gorm:"size:255;not null" json:"owner_name"`
	Email         string    `gorm:"size:255;not null;unique" json:"email"`
	Mobile        string    `gorm:"size:20;not null;unique" json:"mobile"`
	Password      string    `gorm:"not null" json:"-"`

	MobileVerified bool       `gorm:"default:false" json:"mobile_verified"`
	IsArchived     bool       `gorm:"default:false" json:"is_archived"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *OnboardingApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
