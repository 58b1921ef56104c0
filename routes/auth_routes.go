package routes

import (
	"github.com/Yash790975/vidhyakendra-backend-sub000/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/admin/login", handlers.AdminLogin)
}
