package approval

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ApprovalApi struct {
	controller *ApprovalController
	config     *config.Config
}

func NewApprovalApi(controller *ApprovalController, config *config.Config) *ApprovalApi {
	return &ApprovalApi{controller: controller, config: config}
}

func (h *ApprovalApi) Setup(app *fiber.App) {
	approvals := app.Group("/api/approvals", middleware.AuthMiddleware(h.config.SkipAuth))

	approvals.Get("/pending", h.controller.Pending)
	approvals.Post("/:id/submit", h.controller.Submit)
	approvals.Post("/:id/approve", h.controller.Approve)
	approvals.Post("/:id/reject", h.controller.Reject)
}
