package workflow

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type WorkflowController struct {
	Service WorkflowService
}

func NewWorkflowController(service WorkflowService) *WorkflowController {
	return &WorkflowController{Service: service}
}

func statusFor(err error) int {
	if errors.Is(err, ErrInvalidTemplate) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// CreateTemplate godoc
// @Summary      Create workflow template
// @Description  Create a new approval workflow template for a holding
// @Tags         workflows
// @Accept       json
// @Produce      json
// @Param        input body WorkflowTemplate true "Template Input"
// @Success      201 {object} WorkflowTemplate
// @Failure      400 {string} string "Invalid template"
// @Router       /workflows [post]
func (c *WorkflowController) CreateTemplate(ctx *fiber.Ctx) error {
	var input WorkflowTemplate
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.CreateTemplate(ctx.UserContext(), &input); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// GetTemplate godoc
// @Summary      Get workflow template by ID
// @Tags         workflows
// @Produce      json
// @Param        id path string true "Template ID"
// @Success      200 {object} WorkflowTemplate
// @Failure      404 {string} string "Not found"
// @Router       /workflows/{id} [get]
func (c *WorkflowController) GetTemplate(ctx *fiber.Ctx) error {
	template, err := c.Service.GetTemplate(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if template == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return ctx.JSON(template)
}

// ListTemplates godoc
// @Summary      List workflow templates
// @Tags         workflows
// @Produce      json
// @Param        holding_id query string false "Holding ID"
// @Success      200 {array} WorkflowTemplate
// @Router       /workflows [get]
func (c *WorkflowController) ListTemplates(ctx *fiber.Ctx) error {
	templates, err := c.Service.ListTemplates(ctx.UserContext(), ctx.Query("holding_id"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(templates)
}

// UpdateTemplate godoc
// @Summary      Update workflow template
// @Tags         workflows
// @Accept       json
// @Produce      json
// @Param        id path string true "Template ID"
// @Param        input body WorkflowTemplate true "Template Input"
// @Success      200 {object} map[string]string
// @Router       /workflows/{id} [put]
func (c *WorkflowController) UpdateTemplate(ctx *fiber.Ctx) error {
	var input WorkflowTemplate
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.Service.UpdateTemplate(ctx.UserContext(), ctx.Params("id"), &input); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"message": "Template updated successfully"})
}

// DeleteTemplate godoc
// @Summary      Delete workflow template
// @Tags         workflows
// @Param        id path string true "Template ID"
// @Success      200 {object} map[string]string
// @Router       /workflows/{id} [delete]
func (c *WorkflowController) DeleteTemplate(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteTemplate(ctx.UserContext(), ctx.Params("id")); err != nil {
		return ctx.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Template deleted successfully"})
}

// SetDefault godoc
// @Summary      Mark a template as the holding default
// @Description  Atomically clears the previous default for the holding
// @Tags         workflows
// @Param        id path string true "Template ID"
// @Param        holdingId path string true "Holding ID"
// @Success      200 {object} map[string]string
// @Router       /workflows/{id}/default/{holdingId} [post]
func (c *WorkflowController) SetDefault(ctx *fiber.Ctx) error {
	if err := c.Service.SetDefault(ctx.UserContext(), ctx.Params("holdingId"), ctx.Params("id")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"message": "Default template updated"})
}
