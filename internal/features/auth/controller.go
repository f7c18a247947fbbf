package auth

import (
	"errors"

	common_models "go-hiring/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{Service: service}
}

// Login godoc
// @Summary      Login
// @Description  Exchange credentials for a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      401 {string} string "Invalid credentials"
// @Router       /auth/login [post]
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, u, err := c.Service.Login(ctx.UserContext(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"token": token, "user": u})
}

// Register godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201 {object} map[string]string
// @Router       /auth/register [post]
func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var body struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		HoldingID string `json:"holding_id"`
		PuestoID  string `json:"puesto_id"`
	}
	if err := ctx.BodyParser(&body); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if body.Username == "" || body.Password == "" || body.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username, password and email are required"})
	}

	u := &common_models.User{
		Username:  body.Username,
		Email:     body.Email,
		Name:      body.Name,
		HoldingID: body.HoldingID,
		PuestoID:  body.PuestoID,
		Roles:     []string{"requester"},
	}
	if err := c.Service.Register(ctx.UserContext(), u, body.Password); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}
