package workflow

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type WorkflowApi struct {
	controller *WorkflowController
	config     *config.Config
}

func NewWorkflowApi(controller *WorkflowController, config *config.Config) *WorkflowApi {
	return &WorkflowApi{controller: controller, config: config}
}

func (h *WorkflowApi) Setup(app *fiber.App) {
	workflows := app.Group("/api/workflows", middleware.AuthMiddleware(h.config.SkipAuth))

	admin := middleware.RequireRole(h.config.SkipAuth, "admin", "rrhh")

	workflows.Post("/", admin, h.controller.CreateTemplate)
	workflows.Get("/", h.controller.ListTemplates)
	workflows.Get("/:id", h.controller.GetTemplate)
	workflows.Put("/:id", admin, h.controller.UpdateTemplate)
	workflows.Delete("/:id", admin, h.controller.DeleteTemplate)
	workflows.Post("/:id/default/:holdingId", admin, h.controller.SetDefault)
}
