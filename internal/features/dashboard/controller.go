package dashboard

import (
	"fmt"

	common_models "go-hiring/internal/common/models"
	"go-hiring/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{Service: service}
}

// Pending godoc
// @Summary      My pending approval queue
// @Tags         dashboard
// @Produce      json
// @Success      200 {array} requisition.Requisition
// @Router       /dashboard/pending [get]
func (c *DashboardController) Pending(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	rqs, err := c.Service.ListPending(ctx.UserContext(), claims.Email)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rqs)
}

// Chain godoc
// @Summary      Approval chain view
// @Description  The frozen chain with per-step state: completed, current, future or skipped
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Requisition ID"
// @Success      200 {array} dashboard.ChainStepView
// @Router       /dashboard/requisitions/{id}/chain [get]
func (c *DashboardController) Chain(ctx *fiber.Ctx) error {
	views, err := c.Service.ChainView(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if views == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "requisition not found or not submitted"})
	}
	return ctx.JSON(views)
}

// ByStatus godoc
// @Summary      Requisitions by approval status
// @Tags         dashboard
// @Produce      json
// @Param        status query string true "pending_approval | approved | rejected"
// @Router       /dashboard/requisitions [get]
func (c *DashboardController) ByStatus(ctx *fiber.Ctx) error {
	status := common_models.ApprovalStatus(ctx.Query("status", string(common_models.ApprovalStatusPending)))
	switch status {
	case common_models.ApprovalStatusPending, common_models.ApprovalStatusApproved, common_models.ApprovalStatusRejected:
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
	}

	holdingID, _ := ctx.UserContext().Value(common_models.HoldingIDKey).(string)

	rqs, err := c.Service.ListByStatus(ctx.UserContext(), holdingID, status)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rqs)
}

// Export godoc
// @Summary      Export requisitions to Excel
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router       /dashboard/export [get]
func (c *DashboardController) Export(ctx *fiber.Ctx) error {
	holdingID, _ := ctx.UserContext().Value(common_models.HoldingIDKey).(string)

	data, filename, err := c.Service.ExportRequisitions(ctx.UserContext(), holdingID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Send(data)
}
