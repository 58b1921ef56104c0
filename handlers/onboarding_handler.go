package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Yash790975/vidhyakendra-backend-sub000/database"
	"github.com/Yash790975/vidhyakendra-backend-sub000/models"
	"github.com/Yash790975/vidhyakendra-backend-sub000/websocket"
)

type RegisterApplicationRequest struct {
	InstituteName string `json:"institute_name" validate:"required,min=3"`
	InstituteKind string `json:"institute_kind" validate:"required,oneof=school coaching both"`
	OwnerName     string `json:"owner_name" validate:"required,min=3"`
	Email         string `json:"email" validate:"required,email"`
	Mobile        string `json:"mobile" validate:"required,min=10,max=15"`
	Password      string `json:"password" validate:"required,min=6"`

	Details struct {
		Board            string `json:"board"`
		InstituteType    string `json:"institute_type"`
		Medium           string `json:"medium"`
		ClassesOffered   string `json:"classes_offered"`
		CoursesOffered   string `json:"courses_offered"`
		ExpectedStudents string `json:"expected_students"`
	} `json:"details"`
}

func RegisterApplication(c *fiber.Ctx) error {
	var req RegisterApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	var app models.OnboardingApplication
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		app = models.OnboardingApplication{
			InstituteName: req.InstituteName,
			InstituteKind: req.InstituteKind,
			OwnerName:     req.OwnerName,
			Email:         req.Email,
			Mobile:        req.Mobile,
			Password:      string(hashedPassword),
			IsActive:      true,
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}

		details := models.OnboardingInstituteDetails{
			ApplicationID:    app.ID,
			Board:            req.Details.Board,
			InstituteType:    req.Details.InstituteType,
			Medium:           req.Details.Medium,
			ClassesOffered:   req.Details.ClassesOffered,
			CoursesOffered:   req.Details.CoursesOffered,
			ExpectedStudents: req.Details.ExpectedStudents,
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An application with this email or mobile already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	websocket.Publish("application.received", fiber.Map{
		"application_id": app.ID,
		"institute_name": app.InstituteName,
	})

	return c.Status(fiber.StatusCreated).JSON(app)
}

func GetApplication(c *fiber.Ctx) error {
	applicationID := c.Params("applicationId")

	var app models.OnboardingApplication
	if err := database.DB.First(&app, "id = ?", applicationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	var details models.OnboardingInstituteDetails
	if err := database.DB.Where("application_id = ?", app.ID).First(&details).Error; err != nil {
		return c.JSON(fiber.Map{"application": app})
	}
	return c.JSON(fiber.Map{"application": app, "details": details})
}

const otpValidity = 10 * time.Minute

func RequestOTP(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application ID format"})
	}

	var app models.OnboardingApplication
	if err := database.DB.First(&app, "id = ?", applicationID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if app.MobileVerified {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Mobile already verified"})
	}

	code, err := generateOtpCode()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate OTP"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", app.ID).Delete(&models.OtpVerification{}).Error; err != nil {
			return err
		}
		otp := models.OtpVerification{
			ApplicationID: app.ID,
			Code:          code,
			ExpiresAt:     time.Now().Add(otpValidity),
		}
		return tx.Create(&otp).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store OTP"})
	}

	go func() {
		body := fmt.Sprintf("<p>Your Vidhyakendra verification code is <b>%s</b>. It expires in 10 minutes.</p>", code)
		if err := notifier.Send(app.OwnerName, app.Email, "Your verification code", body); err != nil {
			log.Printf("🔥 Failed to send OTP to %s: %v", app.Email, err)
		}
	}()

	return c.JSON(fiber.Map{"message": "Verification code sent"})
}

type VerifyOTPRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

func VerifyOTP(c *fiber.Ctx) error {
	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application ID format"})
	}

	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var otp models.OtpVerification
	if err := database.DB.Where("application_id = ?", applicationID).First(&otp).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No verification code requested"})
	}

	if otp.VerifiedAt != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Code already used"})
	}
	if time.Now().After(otp.ExpiresAt) {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Verification code expired"})
	}
	if otp.Code != req.Code {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid verification code"})
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&otp).Update("verified_at", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.OnboardingApplication{}).
			Where("id = ?", applicationID).
			Update("mobile_verified", true).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify code"})
	}

	return c.JSON(fiber.Map{"message": "Mobile verified successfully"})
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}
