package routes

import (
	"github.com/Yash790975/vidhyakendra-backend-sub000/handlers"
	"github.com/gofiber/fiber/v2"
)

func OnboardingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	onboarding := api.Group("/onboarding")
	onboarding.Post("/applications", handlers.RegisterApplication)
	onboarding.Get("/applications/:applicationId", handlers.GetApplication)
	onboarding.Post("/applications/:applicationId/request-otp", handlers.RequestOTP)
	onboarding.Post("/applications/:applicationId/verify-otp", handlers.VerifyOTP)

	onboarding.Post("/activate", handlers.ActivateInstitute)
}
