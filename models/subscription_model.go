package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Subscription struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InstituteID   uuid.UUID `gorm:"not null" json:"institute_id"`
	PlanVariantID uuid.UUID `gorm:"not null" json:"plan_variant_id"`

	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentStatus string          `gorm:"size:20;not null;default:'success'" json:"payment_status"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	Institute   Institute   `gorm:"foreignkey:InstituteID" json:"-"`
	PlanVariant PlanVariant `gorm:"foreignkey:PlanVariantID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
