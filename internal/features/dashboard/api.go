package dashboard

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	controller *DashboardController
	hub        *Hub
	config     *config.Config
}

func NewDashboardApi(controller *DashboardController, hub *Hub, config *config.Config) *DashboardApi {
	return &DashboardApi{controller: controller, hub: hub, config: config}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	dash := app.Group("/api/dashboard", middleware.AuthMiddleware(h.config.SkipAuth))

	dash.Get("/pending", h.controller.Pending)
	dash.Get("/requisitions", h.controller.ByStatus)
	dash.Get("/requisitions/:id/chain", h.controller.Chain)
	dash.Get("/export", h.controller.Export)

	app.Get("/api/dashboard/ws", websocket.New(h.hub.HandleConnection))
}
