package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InstituteStatusPendingActivation = "pending_activation"
	InstituteStatusTrial             = "trial"
	InstituteStatusActive            = "active"
	InstituteStatusSuspended         = "suspended"
	InstituteStatusBlocked           = "blocked"
	InstituteStatusExpired           = "expired"
	InstituteStatusArchived          = "archived"
)

var InstituteStatuses = []string{
	InstituteStatusPendingActivation, InstituteStatusTrial, InstituteStatusActive,
	InstituteStatusSuspended, InstituteStatusBlocked, InstituteStatusExpired,
	InstituteStatusArchived,
}

// Institute is a live tenant. ApplicationID is unique so one application can
// never materialize two tenants, no matter how activation is retried.
type Institute struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code string    `gorm:"size:20;not null;unique" json:"code"`
	Name string    `gorm:"size:255;not null" json:"name"`
	Kind string    `gorm:"size:20;not null" json:"kind"`

	ApplicationID          uuid.UUID `gorm:"not null;unique" json:"application_id"`
	TransactionReferenceID string    `gorm:"size:40;not null" json:"transaction_reference_id"`
	Status                 string    `gorm:"size:30;not null;default:'pending_activation'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Institute) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
