package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
	"github.com/Yash790975/vidhyakendra-backend-sub000/notifications"
	"github.com/Yash790975/vidhyakendra-backend-sub000/utils"
	"github.com/Yash790975/vidhyakendra-backend-sub000/websocket"
)

const maxCodeAttempts = 20

// ActivationResult is everything a successful activation materializes.
type ActivationResult struct {
	Institute    models.Institute        `json:"institute"`
	Profile      models.InstituteProfile `json:"profile"`
	Details      *models.InstituteDetails `json:"details,omitempty"`
	Subscription models.Subscription     `json:"subscription"`
}

// ProvisioningService turns an approved payment transaction into a live
// tenant. All tenant writes happen in one database transaction: either the
// whole tenant exists afterwards or none of it does.
type ProvisioningService struct {
	DB       *gorm.DB
	Notifier notifications.Notifier

	codeSuffixDigits int
	now              func() time.Time
	afterStep        func(step string) error
}

func NewProvisioningService(db *gorm.DB, notifier notifications.Notifier) *ProvisioningService {
	return &ProvisioningService{
		DB:               db,
		Notifier:         notifier,
		codeSuffixDigits: utils.DefaultCodeSuffixDigits,
		now:              time.Now,
	}
}

// errTenantExists signals that another activation of the same application won
// the race; the caller resolves it by returning the winner's tenant.
var errTenantExists = errors.New("tenant already exists for application")

// Activate runs the provisioning saga for (application, transaction).
//
// Replayed calls are safe: once the application is archived, the tenant the
// first call created is returned instead of re-running the saga. A transaction
// that has not been approved by review is rejected before any write.
func (s *ProvisioningService) Activate(applicationID uuid.UUID, referenceID string) (*ActivationResult, error) {
	var app models.OnboardingApplication
	if err := s.DB.First(&app, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("onboarding application not found")
		}
		return nil, StorageFailure("failed to load onboarding application", err)
	}

	if app.IsArchived {
		return s.existingTenant(applicationID)
	}

	var txn models.PaymentTransaction
	if err := s.DB.First(&txn, "reference_id = ?", referenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("transaction not found")
		}
		return nil, StorageFailure("failed to load transaction", err)
	}

	if txn.ApplicationID != applicationID {
		return nil, InvalidState("transaction does not belong to this application")
	}
	if txn.ApplicationStatus != models.ApplicationStatusApproved {
		return nil, InvalidState("transaction is not approved for activation (status: " + txn.ApplicationStatus + ")")
	}

	var variant models.PlanVariant
	if err := s.DB.Preload("PlanMaster").First(&variant, "id = ?", txn.PlanVariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("plan variant not found")
		}
		return nil, StorageFailure("failed to load plan variant", err)
	}
	months := variant.PlanMaster.DurationMonths
	if months <= 0 {
		months = 1
	}

	var onboardingDetails *models.OnboardingInstituteDetails
	var od models.OnboardingInstituteDetails
	switch err := s.DB.Where("application_id = ?", applicationID).First(&od).Error; {
	case err == nil:
		onboardingDetails = &od
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, StorageFailure("failed to load institute details", err)
	}

	var result ActivationResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := s.now()

		// Archive the application first. The guarded update doubles as the
		// activation lock: a concurrent saga that already archived it makes
		// this a zero-row update and we fall through to its tenant.
		archive := tx.Model(&models.OnboardingApplication{}).
			Where("id = ? AND is_archived = ?", applicationID, false).
			Updates(map[string]interface{}{"is_archived": true, "archived_at": now, "is_active": false})
		if archive.Error != nil {
			return archive.Error
		}
		if archive.RowsAffected == 0 {
			return errTenantExists
		}
		if err := s.step("archive"); err != nil {
			return err
		}

		institute, err := s.createInstitute(tx, app, txn)
		if err != nil {
			return err
		}
		if err := s.step("institute"); err != nil {
			return err
		}

		profile := models.InstituteProfile{
			InstituteID:    institute.ID,
			OwnerName:      app.OwnerName,
			Email:          app.Email,
			Mobile:         app.Mobile,
			MobileVerified: app.MobileVerified,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		if err := s.step("profile"); err != nil {
			return err
		}

		var instituteDetails *models.InstituteDetails
		if onboardingDetails != nil {
			detailsCopy := models.InstituteDetails{
				InstituteID:      institute.ID,
				Board:            onboardingDetails.Board,
				InstituteType:    onboardingDetails.InstituteType,
				Medium:           onboardingDetails.Medium,
				ClassesOffered:   onboardingDetails.ClassesOffered,
				CoursesOffered:   onboardingDetails.CoursesOffered,
				ExpectedStudents: onboardingDetails.ExpectedStudents,
			}
			if err := tx.Create(&detailsCopy).Error; err != nil {
				return err
			}
			instituteDetails = &detailsCopy
		}
		if err := s.step("details"); err != nil {
			return err
		}

		// The subscription window starts at the activation instant, not at
		// the payment instant.
		subscription := models.Subscription{
			InstituteID:   institute.ID,
			PlanVariantID: txn.PlanVariantID,
			Amount:        txn.Amount,
			PaymentStatus: models.PaymentStatusSuccess,
			StartDate:     now,
			EndDate:       now.AddDate(0, months, 0),
			IsActive:      true,
		}
		if err := tx.Create(&subscription).Error; err != nil {
			return err
		}
		if err := s.step("subscription"); err != nil {
			return err
		}

		finalize := tx.Model(&models.PaymentTransaction{}).
			Where("id = ?", txn.ID).
			Update("application_status", models.ApplicationStatusAccountActivated)
		if finalize.Error != nil {
			return finalize.Error
		}
		if err := s.step("finalize"); err != nil {
			return err
		}

		result = ActivationResult{
			Institute:    *institute,
			Profile:      profile,
			Details:      instituteDetails,
			Subscription: subscription,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errTenantExists) {
			return s.existingTenant(applicationID)
		}
		var appErr *Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, StorageFailure("activation was rolled back", err)
	}

	log.Printf("✅ Activated institute %s (%s) for application %s", result.Institute.Code, result.Institute.Name, applicationID)

	go notifications.SendWelcome(s.Notifier, app.Email, app.InstituteName, app.OwnerName)
	go GenerateActivationReceipt(s.DB, txn.ID)
	websocket.Publish("institute.activated", utils.Normalize(map[string]interface{}{
		"institute_code": result.Institute.Code,
		"institute_name": result.Institute.Name,
		"reference_id":   txn.ReferenceID,
		"amount":         txn.Amount,
	}))

	return &result, nil
}

// createInstitute inserts the tenant row, retrying with a fresh code suffix
// on collision. Each attempt runs in a savepoint so a duplicate-key failure
// does not poison the surrounding transaction.
func (s *ProvisioningService) createInstitute(tx *gorm.DB, app models.OnboardingApplication, txn models.PaymentTransaction) (*models.Institute, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		institute := models.Institute{
			Code:                   utils.GenerateInstituteCode(app.InstituteName, s.codeSuffixDigits),
			Name:                   app.InstituteName,
			Kind:                   app.InstituteKind,
			ApplicationID:          app.ID,
			TransactionReferenceID: txn.ReferenceID,
			Status:                 models.InstituteStatusActive,
		}

		err := tx.Transaction(func(inner *gorm.DB) error {
			return inner.Create(&institute).Error
		})
		if err == nil {
			return &institute, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}

		var existing models.Institute
		if tx.Where("application_id = ?", app.ID).First(&existing).Error == nil {
			return nil, errTenantExists
		}
		// code collision, retry with a new suffix
	}
	return nil, GenerationExhausted("could not generate a unique institute code")
}

// existingTenant resolves a replayed or raced activation to the tenant the
// first run created.
func (s *ProvisioningService) existingTenant(applicationID uuid.UUID) (*ActivationResult, error) {
	var institute models.Institute
	if err := s.DB.Where("application_id = ?", applicationID).First(&institute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Conflict("application is archived but no tenant exists for it")
		}
		return nil, StorageFailure("failed to load existing tenant", err)
	}

	var profile models.InstituteProfile
	if err := s.DB.Where("institute_id = ?", institute.ID).First(&profile).Error; err != nil {
		return nil, StorageFailure("failed to load institute profile", err)
	}

	var subscription models.Subscription
	if err := s.DB.Where("institute_id = ?", institute.ID).Order("created_at DESC").First(&subscription).Error; err != nil {
		return nil, StorageFailure("failed to load subscription", err)
	}

	var details *models.InstituteDetails
	var d models.InstituteDetails
	if err := s.DB.Where("institute_id = ?", institute.ID).First(&d).Error; err == nil {
		details = &d
	}

	return &ActivationResult{
		Institute:    institute,
		Profile:      profile,
		Details:      details,
		Subscription: subscription,
	}, nil
}

func (s *ProvisioningService) step(name string) error {
	if s.afterStep == nil {
		return nil
	}
	return s.afterStep(name)
}
