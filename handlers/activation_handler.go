package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Yash790975/vidhyakendra-backend-sub000/services"
	"github.com/Yash790975/vidhyakendra-backend-sub000/utils"
)

type ActivateRequest struct {
	ApplicationID          string `json:"application_id" validate:"required,uuid"`
	TransactionReferenceID string `json:"transaction_reference_id" validate:"required"`
}

// ActivateInstitute is the single entry point of the provisioning saga.
func ActivateInstitute(c *fiber.Ctx) error {
	var req ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := provisioning.Activate(uuid.MustParse(req.ApplicationID), req.TransactionReferenceID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(activationResponse(result))
}

func activationResponse(result *services.ActivationResult) map[string]interface{} {
	doc := map[string]interface{}{
		"institute": map[string]interface{}{
			"id":                       result.Institute.ID,
			"code":                     result.Institute.Code,
			"name":                     result.Institute.Name,
			"kind":                     result.Institute.Kind,
			"status":                   result.Institute.Status,
			"transaction_reference_id": result.Institute.TransactionReferenceID,
		},
		"profile": map[string]interface{}{
			"id":              result.Profile.ID,
			"owner_name":      result.Profile.OwnerName,
			"email":           result.Profile.Email,
			"mobile":          result.Profile.Mobile,
			"mobile_verified": result.Profile.MobileVerified,
		},
		"subscription": map[string]interface{}{
			"id":              result.Subscription.ID,
			"plan_variant_id": result.Subscription.PlanVariantID,
			"amount":          result.Subscription.Amount,
			"payment_status":  result.Subscription.PaymentStatus,
			"start_date":      result.Subscription.StartDate,
			"end_date":        result.Subscription.EndDate,
			"is_active":       result.Subscription.IsActive,
		},
	}
	if result.Details != nil {
		doc["details"] = map[string]interface{}{
			"id":                result.Details.ID,
			"board":             result.Details.Board,
			"institute_type":    result.Details.InstituteType,
			"medium":            result.Details.Medium,
			"classes_offered":   result.Details.ClassesOffered,
			"courses_offered":   result.Details.CoursesOffered,
			"expected_students": result.Details.ExpectedStudents,
		}
	}
	return utils.Normalize(doc).(map[string]interface{})
}
