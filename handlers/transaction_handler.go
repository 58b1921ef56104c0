package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Yash790975/vidhyakendra-backend-sub000/database"
	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
	"github.com/Yash790975/vidhyakendra-backend-sub000/services"
	"github.com/Yash790975/vidhyakendra-backend-sub000/utils"
	"github.com/Yash790975/vidhyakendra-backend-sub000/websocket"
)

type CreateTransactionRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	PlanVariantID string `json:"plan_variant_id" validate:"required,uuid"`
}

func CreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txn, err := services.CreateTransaction(database.DB, uuid.MustParse(req.ApplicationID), uuid.MustParse(req.PlanVariantID))
	if err != nil {
		return errorResponse(c, err)
	}

	websocket.Publish("payment.initiated", utils.Normalize(map[string]interface{}{
		"reference_id": txn.ReferenceID,
		"amount":       txn.Amount,
	}))

	return c.Status(fiber.StatusCreated).JSON(transactionResponse(txn))
}

func GetTransaction(c *fiber.Ctx) error {
	txn, err := services.GetTransactionByReference(database.DB, c.Params("referenceId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(transactionResponse(txn))
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateApplicationStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txn, err := services.UpdateApplicationStatus(database.DB, c.Params("referenceId"), req.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(transactionResponse(txn))
}

type PaymentWebhookPayload struct {
	ReferenceID      string  `json:"reference_id" validate:"required"`
	Status           string  `json:"status" validate:"required,oneof=success failed refunded"`
	GatewayPaymentID *string `json:"gateway_payment_id,omitempty"`
}

// HandlePaymentWebhook records the gateway outcome. The gateway itself is an
// opaque upstream; this endpoint only appends its verdict to the ledger.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	var payload PaymentWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}
	if err := validate.Struct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing, err := services.GetTransactionByReference(database.DB, payload.ReferenceID)
	if err != nil {
		return errorResponse(c, err)
	}
	if existing.PaymentStatus == models.PaymentStatusSuccess && payload.Status == models.PaymentStatusSuccess {
		return c.JSON(fiber.Map{"message": "Webhook already processed"})
	}

	txn, err := services.UpdatePaymentStatus(database.DB, payload.ReferenceID, payload.Status, payload.GatewayPaymentID)
	if err != nil {
		return errorResponse(c, err)
	}

	websocket.Publish("payment."+payload.Status, fiber.Map{"reference_id": txn.ReferenceID})

	return c.JSON(fiber.Map{"message": "Webhook processed"})
}

func UpdatePaymentStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	txn, err := services.UpdatePaymentStatus(database.DB, c.Params("referenceId"), req.Status, nil)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(transactionResponse(txn))
}

// transactionResponse serializes a ledger entry with its amount normalized
// for transport.
func transactionResponse(txn *models.PaymentTransaction) map[string]interface{} {
	doc := map[string]interface{}{
		"id":                 txn.ID,
		"reference_id":       txn.ReferenceID,
		"application_id":     txn.ApplicationID,
		"plan_variant_id":    txn.PlanVariantID,
		"currency":           txn.Currency,
		"amount":             txn.Amount,
		"payment_status":     txn.PaymentStatus,
		"application_status": txn.ApplicationStatus,
		"receipt_url":        txn.ReceiptURL,
		"created_at":         txn.CreatedAt,
	}
	return utils.Normalize(doc).(map[string]interface{})
}
