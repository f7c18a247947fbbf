package audit

import (
	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary      List audit logs
// @Tags         audit
// @Produce      json
// @Param        module query string false "Module name"
// @Param        record_id query string false "Record ID"
// @Success      200 {array} models.AuditLog
// @Router       /audit [get]
func (c *AuditController) ListLogs(ctx *fiber.Ctx) error {
	filters := map[string]interface{}{
		"module":    ctx.Query("module"),
		"record_id": ctx.Query("record_id"),
		"action":    ctx.Query("action"),
	}

	page := int64(ctx.QueryInt("page", 1))
	limit := int64(ctx.QueryInt("limit", 20))

	logs, err := c.Service.ListLogs(ctx.UserContext(), filters, page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(logs)
}
