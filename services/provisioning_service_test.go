package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
)

func TestActivateCreatesFullTenant(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Quarterly", 3, "1000", "10")
	txn := approvedTransaction(t, db, app, variant)

	svc := newTestService(db)
	activatedAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return activatedAt }

	result, err := svc.Activate(app.ID, txn.ReferenceID)
	require.NoError(t, err)

	assert.Regexp(t, `^GVS\d{4}$`, result.Institute.Code)
	assert.Equal(t, "Green Valley School", result.Institute.Name)
	assert.Equal(t, models.InstituteKindSchool, result.Institute.Kind)
	assert.Equal(t, models.InstituteStatusActive, result.Institute.Status)
	assert.Equal(t, app.ID, result.Institute.ApplicationID)
	assert.Equal(t, txn.ReferenceID, result.Institute.TransactionReferenceID)

	assert.Equal(t, result.Institute.ID, result.Profile.InstituteID)
	assert.Equal(t, app.OwnerName, result.Profile.OwnerName)
	assert.Equal(t, app.Email, result.Profile.Email)
	assert.Equal(t, app.Mobile, result.Profile.Mobile)
	assert.True(t, result.Profile.MobileVerified)

	require.NotNil(t, result.Details)
	assert.Equal(t, "CBSE", result.Details.Board)
	assert.Equal(t, "English", result.Details.Medium)

	assert.Equal(t, result.Institute.ID, result.Subscription.InstituteID)
	assert.Equal(t, variant.ID, result.Subscription.PlanVariantID)
	assert.True(t, result.Subscription.Amount.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, models.PaymentStatusSuccess, result.Subscription.PaymentStatus)
	assert.True(t, result.Subscription.IsActive)
	assert.True(t, result.Subscription.StartDate.Equal(activatedAt))
	assert.True(t, result.Subscription.EndDate.Equal(time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)))

	var reloadedApp models.OnboardingApplication
	require.NoError(t, db.First(&reloadedApp, "id = ?", app.ID).Error)
	assert.True(t, reloadedApp.IsArchived)
	assert.NotNil(t, reloadedApp.ArchivedAt)
	assert.False(t, reloadedApp.IsActive)

	var reloadedTxn models.PaymentTransaction
	require.NoError(t, db.First(&reloadedTxn, "id = ?", txn.ID).Error)
	assert.Equal(t, models.ApplicationStatusAccountActivated, reloadedTxn.ApplicationStatus)
}

func TestActivateWithoutOnboardingDetails(t *testing.T) {
	db := setupTestDB(t)
	variant := createPlanVariant(t, db, "Monthly", 1, "500", "0")

	app := models.OnboardingApplication{
		InstituteName: "Lotus Coaching",
		InstituteKind: models.InstituteKindCoaching,
		OwnerName:     "Ravi Nair",
		Email:         "ravi@lotus.in",
		Mobile:        "9800000010",
		Password:      "hashed",
	}
	require.NoError(t, db.Create(&app).Error)

	txn := models.PaymentTransaction{
		ReferenceID:       "TXN0000000000000000000001",
		ApplicationID:     app.ID,
		PlanVariantID:     variant.ID,
		Currency:          "INR",
		Amount:            decimal.NewFromInt(500),
		PaymentStatus:     models.PaymentStatusSuccess,
		ApplicationStatus: models.ApplicationStatusApproved,
	}
	require.NoError(t, db.Create(&txn).Error)

	result, err := newTestService(db).Activate(app.ID, txn.ReferenceID)
	require.NoError(t, err)
	assert.Nil(t, result.Details)

	var count int64
	db.Model(&models.InstituteDetails{}).Count(&count)
	assert.Zero(t, count)
}

func TestActivateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")
	txn := approvedTransaction(t, db, app, variant)

	svc := newTestService(db)
	first, err := svc.Activate(app.ID, txn.ReferenceID)
	require.NoError(t, err)

	second, err := svc.Activate(app.ID, txn.ReferenceID)
	require.NoError(t, err)

	assert.Equal(t, first.Institute.ID, second.Institute.ID)
	assert.Equal(t, first.Institute.Code, second.Institute.Code)
	assert.Equal(t, first.Subscription.ID, second.Subscription.ID)

	var institutes, subscriptions int64
	db.Model(&models.Institute{}).Count(&institutes)
	db.Model(&models.Subscription{}).Count(&subscriptions)
	assert.EqualValues(t, 1, institutes)
	assert.EqualValues(t, 1, subscriptions)
}

func TestActivateRejectsUnapprovedTransaction(t *testing.T) {
	for _, status := range []string{
		models.ApplicationStatusPaymentReceived,
		models.ApplicationStatusDocumentsReview,
		models.ApplicationStatusRejected,
	} {
		t.Run(status, func(t *testing.T) {
			db := setupTestDB(t)
			app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
			variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")

			txn, err := CreateTransaction(db, app.ID, variant.ID)
			require.NoError(t, err)
			if status != models.ApplicationStatusPaymentReceived {
				_, err = UpdateApplicationStatus(db, txn.ReferenceID, status)
				require.NoError(t, err)
			}

			_, err = newTestService(db).Activate(app.ID, txn.ReferenceID)
			require.Error(t, err)
			assert.Equal(t, KindInvalidState, KindOf(err))

			var count int64
			db.Model(&models.Institute{}).Count(&count)
			assert.Zero(t, count)

			var reloaded models.OnboardingApplication
			require.NoError(t, db.First(&reloaded, "id = ?", app.ID).Error)
			assert.False(t, reloaded.IsArchived)
		})
	}
}

func TestActivateRejectsForeignTransaction(t *testing.T) {
	db := setupTestDB(t)
	appA := createApplication(t, db, "Green Valley School", "a@gvs.in", "9800000001")
	appB := createApplication(t, db, "Blue Hills Academy", "b@bha.in", "9800000002")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")
	txnB := approvedTransaction(t, db, appB, variant)

	_, err := newTestService(db).Activate(appA.ID, txnB.ReferenceID)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestActivateUnknownApplicationAndTransaction(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")

	svc := newTestService(db)

	_, err := svc.Activate(uuid.New(), "TXN0000000000000000000001")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Activate(app.ID, "TXN0000000000000000000001")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestActivateArchivedWithoutTenantIsConflict(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	require.NoError(t, db.Model(&models.OnboardingApplication{}).
		Where("id = ?", app.ID).
		Update("is_archived", true).Error)

	_, err := newTestService(db).Activate(app.ID, "TXN0000000000000000000001")
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestActivateRollsBackOnStepFailure(t *testing.T) {
	steps := []string{"archive", "institute", "profile", "details", "subscription", "finalize"}
	for _, step := range steps {
		t.Run(step, func(t *testing.T) {
			db := setupTestDB(t)
			app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
			variant := createPlanVariant(t, db, "Annual", 12, "1000", "10")
			txn := approvedTransaction(t, db, app, variant)

			svc := newTestService(db)
			failing := step
			svc.afterStep = func(name string) error {
				if name == failing {
					return fmt.Errorf("forced failure after %s", name)
				}
				return nil
			}

			_, err := svc.Activate(app.ID, txn.ReferenceID)
			require.Error(t, err)
			assert.Equal(t, KindStorageFailure, KindOf(err))

			for _, model := range []interface{}{
				&models.Institute{}, &models.InstituteProfile{},
				&models.InstituteDetails{}, &models.Subscription{},
			} {
				var count int64
				require.NoError(t, db.Model(model).Count(&count).Error)
				assert.Zero(t, count, "%T rows survived the rollback", model)
			}

			var reloadedApp models.OnboardingApplication
			require.NoError(t, db.First(&reloadedApp, "id = ?", app.ID).Error)
			assert.False(t, reloadedApp.IsArchived)
			assert.True(t, reloadedApp.IsActive)

			var reloadedTxn models.PaymentTransaction
			require.NoError(t, db.First(&reloadedTxn, "id = ?", txn.ID).Error)
			assert.Equal(t, models.ApplicationStatusApproved, reloadedTxn.ApplicationStatus)
		})
	}
}

func TestActivateRetriesOnCodeCollision(t *testing.T) {
	db := setupTestDB(t)

	// one suffix digit leaves only ten possible codes per prefix, so
	// collisions between identically named institutes are near certain
	codes := make(map[string]bool)
	for i := 0; i < 5; i++ {
		app := createApplication(t, db, "Sunrise Academy",
			fmt.Sprintf("owner%d@sunrise.in", i), fmt.Sprintf("98000001%02d", i))
		variant := createPlanVariant(t, db, fmt.Sprintf("Plan %d", i), 1, "500", "0")
		txn := approvedTransaction(t, db, app, variant)

		svc := newTestService(db)
		svc.codeSuffixDigits = 1

		result, err := svc.Activate(app.ID, txn.ReferenceID)
		require.NoError(t, err)
		assert.Regexp(t, `^SA\d$`, result.Institute.Code)
		assert.False(t, codes[result.Institute.Code], "code %s assigned twice", result.Institute.Code)
		codes[result.Institute.Code] = true
	}

	var count int64
	db.Model(&models.Institute{}).Count(&count)
	assert.EqualValues(t, 5, count)
}

func TestActivateExhaustsCodeSpace(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Sunrise Academy", "owner@sunrise.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")
	txn := approvedTransaction(t, db, app, variant)

	// occupy every single-digit code for the prefix
	for i := 0; i < 10; i++ {
		seeded := models.Institute{
			Code:                   fmt.Sprintf("SA%d", i),
			Name:                   "Sunrise Academy",
			Kind:                   models.InstituteKindSchool,
			ApplicationID:          uuid.New(),
			TransactionReferenceID: fmt.Sprintf("TXNSEED%017d", i),
			Status:                 models.InstituteStatusActive,
		}
		require.NoError(t, db.Create(&seeded).Error)
	}

	svc := newTestService(db)
	svc.codeSuffixDigits = 1

	_, err := svc.Activate(app.ID, txn.ReferenceID)
	require.Error(t, err)
	assert.Equal(t, KindGenerationExhausted, KindOf(err))

	var reloaded models.OnboardingApplication
	require.NoError(t, db.First(&reloaded, "id = ?", app.ID).Error)
	assert.False(t, reloaded.IsArchived, "exhaustion must roll the archive back")

	var count int64
	db.Model(&models.Subscription{}).Count(&count)
	assert.Zero(t, count)
}
