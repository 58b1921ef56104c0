package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Yash790975/vidhyakendra-backend-sub000/utils"
)

type PlanMaster struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"size:100;not null;unique" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	DurationMonths int       `gorm:"not null;default:1" json:"duration_months"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	Variants []PlanVariant `gorm:"foreignkey:PlanMasterID" json:"variants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PlanMaster) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type PlanVariant struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlanMasterID uuid.UUID `gorm:"not null" json:"plan_master_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`

	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	DiscountedPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discounted_price"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	PlanMaster PlanMaster `gorm:"foreignkey:PlanMasterID" json:"plan_master,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *PlanVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps discounted_price derived from price and discount_percent
// so a stale stored value can never leak into a transaction amount.
func (v *PlanVariant) BeforeSave(tx *gorm.DB) error {
	v.DiscountedPrice = utils.DiscountedPrice(v.Price, v.DiscountPercent)
	return nil
}
