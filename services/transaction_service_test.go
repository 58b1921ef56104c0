package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
)

func TestCreateTransactionComputesDiscountedAmount(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "10")

	txn, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)

	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(900)), "amount = %s", txn.Amount)
	assert.Equal(t, "INR", txn.Currency)
	assert.Equal(t, models.PaymentStatusPending, txn.PaymentStatus)
	assert.Equal(t, models.ApplicationStatusPaymentReceived, txn.ApplicationStatus)
	assert.Regexp(t, `^TXN[0-9A-F]{24}$`, txn.ReferenceID)
}

func TestCreateTransactionZeroDiscountChargesFullPrice(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1250.50", "0")

	txn, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("1250.50")))
}

func TestCreateTransactionRequiresInstituteDetails(t *testing.T) {
	db := setupTestDB(t)
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")

	// application registered without the details step
	app := models.OnboardingApplication{
		InstituteName: "Bare Application",
		InstituteKind: models.InstituteKindCoaching,
		OwnerName:     "Asha Verma",
		Email:         "bare@example.in",
		Mobile:        "9800000002",
		Password:      "hashed",
	}
	require.NoError(t, db.Create(&app).Error)

	_, err := CreateTransaction(db, app.ID, variant.ID)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateTransactionRejectsSecondTransaction(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")

	_, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)

	_, err = CreateTransaction(db, app.ID, variant.ID)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCreateTransactionUnknownVariant(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")

	_, err := CreateTransaction(db, app.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetTransactionByReference(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")

	created, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)

	found, err := GetTransactionByReference(db, created.ReferenceID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = GetTransactionByReference(db, "TXN000000000000000000000000")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateApplicationStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")

	txn, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)

	updated, err := UpdateApplicationStatus(db, txn.ReferenceID, models.ApplicationStatusDocumentsReview)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusDocumentsReview, updated.ApplicationStatus)

	_, err = UpdateApplicationStatus(db, txn.ReferenceID, "shipped")
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))

	// account_activated is reserved for the provisioning saga
	_, err = UpdateApplicationStatus(db, txn.ReferenceID, models.ApplicationStatusAccountActivated)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))

	_, err = UpdateApplicationStatus(db, "TXN000000000000000000000000", models.ApplicationStatusApproved)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdatePaymentStatusRecordsGatewayOutcome(t *testing.T) {
	db := setupTestDB(t)
	app := createApplication(t, db, "Green Valley School", "owner@gvs.in", "9800000001")
	variant := createPlanVariant(t, db, "Annual", 12, "1000", "0")

	txn, err := CreateTransaction(db, app.ID, variant.ID)
	require.NoError(t, err)

	gatewayID := "pay_29gkQW"
	updated, err := UpdatePaymentStatus(db, txn.ReferenceID, models.PaymentStatusSuccess, &gatewayID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, updated.PaymentStatus)
	require.NotNil(t, updated.GatewayPaymentID)
	assert.Equal(t, gatewayID, *updated.GatewayPaymentID)

	_, err = UpdatePaymentStatus(db, txn.ReferenceID, "cancelled", nil)
	require.Error(t, err)
	assert.Equal(t, KindInvalidState, KindOf(err))
}
