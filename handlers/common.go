package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Yash790975/vidhyakendra-backend-sub000/notifications"
	"github.com/Yash790975/vidhyakendra-backend-sub000/services"
)

var validate = validator.New()

var (
	provisioning *services.ProvisioningService
	notifier     notifications.Notifier = &notifications.NoopService{}
)

// SetupServices wires the injected dependencies. Called once from main and
// from test setups.
func SetupServices(p *services.ProvisioningService, n notifications.Notifier) {
	provisioning = p
	if n != nil {
		notifier = n
	}
}

// errorResponse maps the service error taxonomy onto HTTP statuses and keeps
// the stable kind in the body so clients do not have to parse messages.
func errorResponse(c *fiber.Ctx, err error) error {
	kind := services.KindOf(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindConflict:
		status = fiber.StatusConflict
	case services.KindInvalidState:
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "kind": string(kind)})
}
