package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Yash790975/vidhyakendra-backend-sub000/database"
	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
)

type PlanRequest struct {
	Name           string `json:"name" validate:"required,min=3"`
	Description    string `json:"description"`
	DurationMonths int    `json:"duration_months" validate:"required,gt=0"`
}

func CreatePlan(c *fiber.Ctx) error {
	var req PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan := models.PlanMaster{
		Name:           req.Name,
		Description:    req.Description,
		DurationMonths: req.DurationMonths,
		IsActive:       true,
	}
	if err := database.DB.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create plan"})
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

type PlanVariantRequest struct {
	Name            string  `json:"name" validate:"required"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lt=100"`
}

func CreatePlanVariant(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan ID format"})
	}

	var req PlanVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var plan models.PlanMaster
	if err := database.DB.First(&plan, "id = ?", planID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}

	// discounted_price is derived in the model's BeforeSave hook
	variant := models.PlanVariant{
		PlanMasterID:    plan.ID,
		Name:            req.Name,
		Price:           decimal.NewFromFloat(req.Price),
		DiscountPercent: decimal.NewFromFloat(req.DiscountPercent),
		IsActive:        true,
	}
	if err := database.DB.Create(&variant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create plan variant"})
	}
	return c.Status(fiber.StatusCreated).JSON(variant)
}

func UpdatePlanVariant(c *fiber.Ctx) error {
	variantID := c.Params("variantId")

	var variant models.PlanVariant
	if err := database.DB.First(&variant, "id = ?", variantID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan variant not found"})
	}

	var req PlanVariantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	variant.Name = req.Name
	variant.Price = decimal.NewFromFloat(req.Price)
	variant.DiscountPercent = decimal.NewFromFloat(req.DiscountPercent)
	if err := database.DB.Save(&variant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update plan variant"})
	}
	return c.JSON(variant)
}

func ListActivePlans(c *fiber.Ctx) error {
	var plans []models.PlanMaster
	database.DB.
		Preload("Variants", "is_active = ?", true).
		Where("is_active = ?", true).
		Find(&plans)
	return c.JSON(plans)
}

func TogglePlanStatus(c *fiber.Ctx) error {
	planID := c.Params("planId")
	type Request struct {
		IsActive bool `json:"is_active"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	result := database.DB.Model(&models.PlanMaster{}).Where("id = ?", planID).Update("is_active", req.IsActive)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update plan status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}
	return c.JSON(fiber.Map{"message": "Plan status updated successfully."})
}
