package audit

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
}

func NewAuditApi(controller *AuditController, config *config.Config) *AuditApi {
	return &AuditApi{controller: controller, config: config}
}

func (h *AuditApi) Setup(app *fiber.App) {
	audit := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth))

	audit.Get("/", middleware.RequireRole(h.config.SkipAuth, "admin", "rrhh"), h.controller.ListLogs)
}
