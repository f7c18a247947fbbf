package requisition

import (
	common_models "go-hiring/internal/common/models"
	"go-hiring/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type RequisitionController struct {
	Service RequisitionService
}

func NewRequisitionController(service RequisitionService) *RequisitionController {
	return &RequisitionController{Service: service}
}

// CreateRequisition godoc
// @Summary      Create requisition
// @Description  Create a hiring requisition (not yet submitted for approval)
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Success      201 {object} Requisition
// @Router       /requisitions [post]
func (c *RequisitionController) CreateRequisition(ctx *fiber.Ctx) error {
	var body struct {
		Title     string `json:"title"`
		Positions int    `json:"positions"`
		PuestoID  string `json:"puesto_id"`
		StoreID   string `json:"store_id"`
		BrandID   string `json:"brand_id"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	rq := &Requisition{
		Title:     body.Title,
		Positions: body.Positions,
		PuestoID:  body.PuestoID,
		StoreID:   body.StoreID,
		BrandID:   body.BrandID,
		CreatedBy: common_models.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
		},
	}

	if err := c.Service.CreateRequisition(ctx.UserContext(), rq); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(rq)
}

// GetRequisition godoc
// @Summary      Get requisition by ID
// @Tags         requisitions
// @Produce      json
// @Param        id path string true "Requisition ID"
// @Success      200 {object} Requisition
// @Failure      404 {string} string "Not found"
// @Router       /requisitions/{id} [get]
func (c *RequisitionController) GetRequisition(ctx *fiber.Ctx) error {
	rq, err := c.Service.GetRequisition(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if rq == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Requisition not found"})
	}
	return ctx.JSON(rq)
}

// ListRequisitions godoc
// @Summary      List requisitions
// @Tags         requisitions
// @Produce      json
// @Param        holding_id query string false "Holding ID"
// @Param        status query string false "Approval status"
// @Success      200 {array} Requisition
// @Router       /requisitions [get]
func (c *RequisitionController) ListRequisitions(ctx *fiber.Ctx) error {
	filter := map[string]interface{}{
		"holding_id":      ctx.Query("holding_id"),
		"approval.status": ctx.Query("status"),
	}
	limit := int64(ctx.QueryInt("limit", 50))
	offset := int64(ctx.QueryInt("offset", 0))

	rqs, err := c.Service.ListRequisitions(ctx.UserContext(), filter, limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rqs)
}
