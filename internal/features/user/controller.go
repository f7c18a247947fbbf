package user

import (
	"go-hiring/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Repo UserRepository
}

func NewUserController(repo UserRepository) *UserController {
	return &UserController{Repo: repo}
}

// Me godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Success      200 {object} models.User
// @Router       /users/me [get]
func (c *UserController) Me(ctx *fiber.Ctx) error {
	claims := ctx.Locals(utils.UserClaimsKey).(*utils.UserClaims)

	user, err := c.Repo.FindByID(ctx.UserContext(), claims.UserID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if user == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return ctx.JSON(user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        holding_id query string false "Holding ID"
// @Success      200 {array} models.User
// @Router       /users [get]
func (c *UserController) List(ctx *fiber.Ctx) error {
	limit := int64(ctx.QueryInt("limit", 50))
	offset := int64(ctx.QueryInt("offset", 0))

	users, err := c.Repo.List(ctx.UserContext(), ctx.Query("holding_id"), limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(users)
}
