package routes

import (
	"github.com/Yash790975/vidhyakendra-backend-sub000/handlers"
	"github.com/Yash790975/vidhyakendra-backend-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func PlanRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Get("/plans", handlers.ListActivePlans)

	adminPlans := api.Group("/admin/plans", middleware.Protected(), middleware.AdminRequired())
	adminPlans.Post("", handlers.CreatePlan)
	adminPlans.Put("/:planId/status", handlers.TogglePlanStatus)
	adminPlans.Post("/:planId/variants", handlers.CreatePlanVariant)

	adminVariants := api.Group("/admin/variants", middleware.Protected(), middleware.AdminRequired())
	adminVariants.Put("/:variantId", handlers.UpdatePlanVariant)
}
