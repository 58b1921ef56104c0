package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	ApplicationStatusPaymentReceived  = "payment_received"
	ApplicationStatusDocumentsReview  = "documents_under_review"
	ApplicationStatusApproved         = "approved"
	ApplicationStatusRejected         = "rejected"
	ApplicationStatusAccountActivated = "account_activated"
)

// PaymentTransaction is the ledger entry for a plan purchase. ReferenceID is
// the idempotency token shared with the gateway and the client; the internal
// id never leaves the backend. The amount is fixed at creation time.
type PaymentTransaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReferenceID   string    `gorm:"size:40;not null;unique" json:"reference_id"`
	ApplicationID uuid.UUID `gorm:"not null;unique" json:"application_id"`
	PlanVariantID uuid.UUID `gorm:"not null" json:"plan_variant_id"`

	Currency string          `gorm:"size:3;not null;default:'INR'" json:"currency"`
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`

	GatewayOrderID   *string `gorm:"size:255" json:"gateway_order_id,omitempty"`
	GatewayPaymentID *string `gorm:"size:255" json:"gateway_payment_id,omitempty"`

	PaymentStatus     string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	ApplicationStatus string  `gorm:"size:30;not null;default:'payment_received'" json:"application_status"`
	ReceiptURL        *string `gorm:"size:255" json:"receipt_url,omitempty"`
	IsActive          bool    `gorm:"default:true" json:"is_active"`

	Application OnboardingApplication `gorm:"foreignkey:ApplicationID" json:"-"`
	PlanVariant PlanVariant           `gorm:"foreignkey:PlanVariantID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

var PaymentStatuses = []string{
	PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusRefunded,
}

var ApplicationStatuses = []string{
	ApplicationStatusPaymentReceived, ApplicationStatusDocumentsReview,
	ApplicationStatusApproved, ApplicationStatusRejected, ApplicationStatusAccountActivated,
}
