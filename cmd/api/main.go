package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/Yash790975/vidhyakendra-backend-sub000/database"
	"github.com/Yash790975/vidhyakendra-backend-sub000/handlers"
	"github.com/Yash790975/vidhyakendra-backend-sub000/jobs"
	"github.com/Yash790975/vidhyakendra-backend-sub000/notifications"
	"github.com/Yash790975/vidhyakendra-backend-sub000/routes"
	"github.com/Yash790975/vidhyakendra-backend-sub000/services"
	"github.com/Yash790975/vidhyakendra-backend-sub000/websocket"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()

	notifier := notifications.NewEmailService()
	provisioning := services.NewProvisioningService(database.DB, notifier)
	handlers.SetupServices(provisioning, notifier)

	c := cron.New()
	c.AddFunc("0 2 * * *", jobs.ExpireSubscriptions)
	go c.Start()
	log.Println("✅ Cron job for subscription expiry scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Vidhyakendra",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Vidhyakendra API",
		})
	})

	routes.AuthRoutes(app)
	routes.OnboardingRoutes(app)
	routes.PlanRoutes(app)
	routes.TransactionRoutes(app)
	routes.InstituteRoutes(app)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
