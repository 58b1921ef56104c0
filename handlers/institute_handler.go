package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Yash790975/vidhyakendra-backend-sub000/database"
	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
)

func ListInstitutes(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	query := database.DB.Model(&models.Institute{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var institutes []models.Institute
	if err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&institutes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(institutes)
}

func GetInstitute(c *fiber.Ctx) error {
	code := c.Params("code")

	var institute models.Institute
	if err := database.DB.Where("code = ?", code).First(&institute).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Institute not found"})
	}

	var profile models.InstituteProfile
	database.DB.Where("institute_id = ?", institute.ID).First(&profile)

	var subscription models.Subscription
	database.DB.Where("institute_id = ?", institute.ID).Order("created_at DESC").First(&subscription)

	return c.JSON(fiber.Map{
		"institute":    institute,
		"profile":      profile,
		"subscription": subscription,
	})
}

type InstituteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending_activation trial active suspended blocked expired archived"`
}

func UpdateInstituteStatus(c *fiber.Ctx) error {
	var req InstituteStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := database.DB.Model(&models.Institute{}).Where("code = ?", c.Params("code")).Update("status", req.Status)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update institute status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Institute not found"})
	}
	return c.JSON(fiber.Map{"message": "Institute status updated successfully."})
}
