package user

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
}

func NewUserApi(controller *UserController, config *config.Config) *UserApi {
	return &UserApi{controller: controller, config: config}
}

func (h *UserApi) Setup(app *fiber.App) {
	users := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth))

	users.Get("/me", h.controller.Me)
	users.Get("/", h.controller.List)
}
