package routes

import (
	"github.com/Yash790975/vidhyakendra-backend-sub000/handlers"
	"github.com/Yash790975/vidhyakendra-backend-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func TransactionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/transactions", handlers.CreateTransaction)
	api.Get("/transactions/:referenceId", handlers.GetTransaction)
	api.Post("/payments/webhook", handlers.HandlePaymentWebhook)

	adminTxns := api.Group("/admin/transactions", middleware.Protected(), middleware.AdminRequired())
	adminTxns.Put("/:referenceId/application-status", handlers.UpdateApplicationStatus)
	adminTxns.Put("/:referenceId/payment-status", handlers.UpdatePaymentStatus)
}
