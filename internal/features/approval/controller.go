package approval

import (
	"errors"

	common_models "go-hiring/internal/common/models"
	"go-hiring/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type ApprovalController struct {
	Service ApprovalService
}

func NewApprovalController(service ApprovalService) *ApprovalController {
	return &ApprovalController{Service: service}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrResolutionFailure):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Submit godoc
// @Summary      Submit requisition for approval
// @Description  Resolves the approval chain and freezes it on the requisition
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Requisition ID"
// @Param        input body map[string]string false "Optional workflow_id"
// @Success      200 {object} requisition.Requisition
// @Failure      409 {string} string "Already submitted"
// @Router       /approvals/{id}/submit [post]
func (c *ApprovalController) Submit(ctx *fiber.Ctx) error {
	var body struct {
		WorkflowID string `json:"workflow_id"`
	}
	// Body is optional; the holding default applies when absent.
	_ = ctx.BodyParser(&body)

	rq, err := c.Service.SubmitForApproval(ctx.UserContext(), ctx.Params("id"), body.WorkflowID)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rq)
}

// Approve godoc
// @Summary      Approve current step
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Requisition ID"
// @Param        input body map[string]string false "Optional reason"
// @Success      200 {object} requisition.Requisition
// @Failure      403 {string} string "Not the current approver"
// @Failure      409 {string} string "Not actionable"
// @Router       /approvals/{id}/approve [post]
func (c *ApprovalController) Approve(ctx *fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = ctx.BodyParser(&body)

	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	rq, err := c.Service.Decide(ctx.UserContext(), ctx.Params("id"), claims.Email, common_models.DecisionApproved, body.Reason)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rq)
}

// Reject godoc
// @Summary      Reject current step
// @Description  Rejection is terminal; a non-empty reason is required
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Requisition ID"
// @Param        input body map[string]string true "Reason"
// @Success      200 {object} requisition.Requisition
// @Failure      400 {string} string "Missing reason"
// @Failure      403 {string} string "Not the current approver"
// @Router       /approvals/{id}/reject [post]
func (c *ApprovalController) Reject(ctx *fiber.Ctx) error {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = ctx.BodyParser(&body)

	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	rq, err := c.Service.Decide(ctx.UserContext(), ctx.Params("id"), claims.Email, common_models.DecisionRejected, body.Reason)
	if err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rq)
}

// Pending godoc
// @Summary      My pending approvals
// @Tags         approvals
// @Produce      json
// @Success      200 {array} requisition.Requisition
// @Router       /approvals/pending [get]
func (c *ApprovalController) Pending(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	rqs, err := c.Service.ListActionable(ctx.UserContext(), claims.Email)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(rqs)
}
