package org

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type OrgApi struct {
	controller *OrgController
	config     *config.Config
}

func NewOrgApi(controller *OrgController, config *config.Config) *OrgApi {
	return &OrgApi{controller: controller, config: config}
}

func (h *OrgApi) Setup(app *fiber.App) {
	org := app.Group("/api/org", middleware.AuthMiddleware(h.config.SkipAuth))

	org.Get("/holdings/:holdingId/gerencias", h.controller.ListGerencias)
	org.Get("/gerencias/:gerenciaId/areas", h.controller.ListAreas)
	org.Get("/areas/:areaId/puestos", h.controller.ListPuestos)
}
