package requisition

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type RequisitionApi struct {
	controller *RequisitionController
	config     *config.Config
}

func NewRequisitionApi(controller *RequisitionController, config *config.Config) *RequisitionApi {
	return &RequisitionApi{controller: controller, config: config}
}

func (h *RequisitionApi) Setup(app *fiber.App) {
	rqs := app.Group("/api/requisitions", middleware.AuthMiddleware(h.config.SkipAuth))

	rqs.Post("/", h.controller.CreateRequisition)
	rqs.Get("/", h.controller.ListRequisitions)
	rqs.Get("/:id", h.controller.GetRequisition)
}
