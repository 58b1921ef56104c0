package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
	"github.com/Yash790975/vidhyakendra-backend-sub000/notifications"
)

// setupTestDB opens a fresh in-memory database per test. The shared-cache DSN
// is keyed by the test name so every connection in the pool sees the same
// database while tests stay isolated from each other.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.OnboardingApplication{},
		&models.OnboardingInstituteDetails{},
		&models.OtpVerification{},
		&models.PlanMaster{},
		&models.PlanVariant{},
		&models.PaymentTransaction{},
		&models.Institute{},
		&models.InstituteProfile{},
		&models.InstituteDetails{},
		&models.Subscription{},
		&models.Admin{},
	))
	return db
}

func newTestService(db *gorm.DB) *ProvisioningService {
	return NewProvisioningService(db, &notifications.NoopService{})
}

func createApplication(t *testing.T, db *gorm.DB, name, email, mobile string) models.OnboardingApplication {
	t.Helper()

	app := models.OnboardingApplication{
		InstituteName:  name,
		InstituteKind:  models.InstituteKindSchool,
		OwnerName:      "Asha Verma",
		Email:          email,
		Mobile:         mobile,
		Password:       "hashed",
		MobileVerified: true,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&app).Error)

	details := models.OnboardingInstituteDetails{
		ApplicationID:    app.ID,
		Board:            "CBSE",
		Medium:           "English",
		ClassesOffered:   "1-10",
		ExpectedStudents: "100-500",
	}
	require.NoError(t, db.Create(&details).Error)

	return app
}

func createPlanVariant(t *testing.T, db *gorm.DB, planName string, months int, price, discount string) models.PlanVariant {
	t.Helper()

	plan := models.PlanMaster{Name: planName, DurationMonths: months, IsActive: true}
	require.NoError(t, db.Create(&plan).Error)

	variant := models.PlanVariant{
		PlanMasterID:    plan.ID,
		Name:            "Standard",
		Price:           decimal.RequireFromString(price),
		DiscountPercent: decimal.RequireFromString(discount),
		IsActive:        true,
	}
	require.NoError(t, db.Create(&variant).Error)

	return variant
}

// approvedTransaction walks a transaction through payment success and admin
// approval, the state activation requires.
func approvedTransaction(t *testing.T, db *gorm.DB, app models.OnboardingApplication, variant models.PlanVariant) models.PaymentTransaction {
	t.Helper()

	txn, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)

	_, err = UpdatePaymentStatus(db, txn.ReferenceID, models.PaymentStatusSuccess, nil)
	require.NoError(t, err)

	updated, err := UpdateApplicationStatus(db, txn.ReferenceID, models.ApplicationStatusApproved)
	require.NoError(t, err)

	return *updated
}
