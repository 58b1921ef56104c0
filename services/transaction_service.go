package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
	"github.com/Yash790975/vidhyakendra-backend-sub000/utils"
)

const maxReferenceAttempts = 5

// CreateTransaction opens the payment ledger entry for an application's plan
// purchase. The amount is computed once here and never recomputed: the
// discounted price is always derived from price x (1 - discount/100), the
// stored discounted_price column is only a cache.
func CreateTransaction(db *gorm.DB, applicationID, planVariantID uuid.UUID) (*models.PaymentTransaction, error) {
	var details models.OnboardingInstituteDetails
	if err := db.Where("application_id = ?", applicationID).First(&details).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("institute details not found for application")
		}
		return nil, StorageFailure("failed to load institute details", err)
	}

	var existing models.PaymentTransaction
	err := db.Where("application_id = ?", applicationID).First(&existing).Error
	if err == nil {
		return nil, Conflict("a transaction already exists for this application")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, StorageFailure("failed to check existing transaction", err)
	}

	var variant models.PlanVariant
	if err := db.Where("id = ? AND is_active = ?", planVariantID, true).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("plan variant not found")
		}
		return nil, StorageFailure("failed to load plan variant", err)
	}

	amount := variant.Price
	if variant.DiscountPercent.IsPositive() {
		amount = utils.DiscountedPrice(variant.Price, variant.DiscountPercent)
	}

	// The reference id and the application id are both unique columns, so a
	// duplicate-key failure here is either a generator collision (retry with
	// a fresh token) or a concurrent transaction for the same application
	// (report the conflict).
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		txn := models.PaymentTransaction{
			ReferenceID:       utils.GenerateReferenceID(),
			ApplicationID:     applicationID,
			PlanVariantID:     variant.ID,
			Currency:          "INR",
			Amount:            amount,
			PaymentStatus:     models.PaymentStatusPending,
			ApplicationStatus: models.ApplicationStatusPaymentReceived,
			IsActive:          true,
		}

		err := db.Create(&txn).Error
		if err == nil {
			return &txn, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, StorageFailure("failed to create transaction", err)
		}

		var race models.PaymentTransaction
		if db.Where("application_id = ?", applicationID).First(&race).Error == nil {
			return nil, Conflict("a transaction already exists for this application")
		}
	}

	return nil, GenerationExhausted("could not generate a unique transaction reference id")
}

// GetTransactionByReference looks a transaction up by its external reference
// id, the only key clients and the gateway are given.
func GetTransactionByReference(db *gorm.DB, referenceID string) (*models.PaymentTransaction, error) {
	var txn models.PaymentTransaction
	if err := db.Where("reference_id = ?", referenceID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("transaction not found")
		}
		return nil, StorageFailure("failed to load transaction", err)
	}
	return &txn, nil
}

// UpdateApplicationStatus applies an administrative review transition. It
// never fires activation side effects; those belong to the provisioning saga.
func UpdateApplicationStatus(db *gorm.DB, referenceID, status string) (*models.PaymentTransaction, error) {
	if !contains(models.ApplicationStatuses, status) {
		return nil, InvalidState("unknown application status: " + status)
	}
	if status == models.ApplicationStatusAccountActivated {
		return nil, InvalidState("account_activated is set by activation, not by review")
	}
	return updateTransaction(db, referenceID, map[string]interface{}{"application_status": status})
}

// UpdatePaymentStatus records the gateway outcome for a transaction.
func UpdatePaymentStatus(db *gorm.DB, referenceID, status string, gatewayPaymentID *string) (*models.PaymentTransaction, error) {
	if !contains(models.PaymentStatuses, status) {
		return nil, InvalidState("unknown payment status: " + status)
	}
	values := map[string]interface{}{"payment_status": status}
	if gatewayPaymentID != nil {
		values["gateway_payment_id"] = *gatewayPaymentID
	}
	return updateTransaction(db, referenceID, values)
}

func updateTransaction(db *gorm.DB, referenceID string, values map[string]interface{}) (*models.PaymentTransaction, error) {
	result := db.Model(&models.PaymentTransaction{}).Where("reference_id = ?", referenceID).Updates(values)
	if result.Error != nil {
		return nil, StorageFailure("failed to update transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, NotFound("transaction not found")
	}
	return GetTransactionByReference(db, referenceID)
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
