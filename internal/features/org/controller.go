package org

import (
	"github.com/gofiber/fiber/v2"
)

// Hierarchy editing is owned by an external admin tool; this surface is
// read-only.
type OrgController struct {
	Repo OrgRepository
}

func NewOrgController(repo OrgRepository) *OrgController {
	return &OrgController{Repo: repo}
}

// ListGerencias godoc
// @Summary      List gerencias of a holding
// @Tags         org
// @Produce      json
// @Param        holdingId path string true "Holding ID"
// @Success      200 {array} Gerencia
// @Router       /org/holdings/{holdingId}/gerencias [get]
func (c *OrgController) ListGerencias(ctx *fiber.Ctx) error {
	gerencias, err := c.Repo.ListGerencias(ctx.UserContext(), ctx.Params("holdingId"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(gerencias)
}

// ListAreas godoc
// @Summary      List areas of a gerencia
// @Tags         org
// @Produce      json
// @Param        gerenciaId path string true "Gerencia ID"
// @Success      200 {array} Area
// @Router       /org/gerencias/{gerenciaId}/areas [get]
func (c *OrgController) ListAreas(ctx *fiber.Ctx) error {
	areas, err := c.Repo.ListAreas(ctx.UserContext(), ctx.Params("gerenciaId"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(areas)
}

// ListPuestos godoc
// @Summary      List puestos of an area
// @Tags         org
// @Produce      json
// @Param        areaId path string true "Area ID"
// @Success      200 {array} Puesto
// @Router       /org/areas/{areaId}/puestos [get]
func (c *OrgController) ListPuestos(ctx *fiber.Ctx) error {
	puestos, err := c.Repo.ListPuestos(ctx.UserContext(), ctx.Params("areaId"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(puestos)
}
