package routes

import (
	"github.com/Yash790975/vidhyakendra-backend-sub000/handlers"
	"github.com/Yash790975/vidhyakendra-backend-sub000/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InstituteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin/institutes", middleware.Protected(), middleware.AdminRequired())
	admin.Get("", handlers.ListInstitutes)
	admin.Get("/:code", handlers.GetInstitute)
	admin.Put("/:code/status", handlers.UpdateInstituteStatus)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/admin", websocket.New(handlers.ServeAdminWs))
}
