package sync

import (
	"go-hiring/internal/config"
	"go-hiring/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) *SyncApi {
	return &SyncApi{controller: controller, config: config}
}

func (h *SyncApi) Setup(app *fiber.App) {
	syncGroup := app.Group("/api/sync", middleware.AuthMiddleware(h.config.SkipAuth))

	admin := middleware.RequireRole(h.config.SkipAuth, "admin")

	syncGroup.Post("/settings", admin, h.controller.CreateSyncSetting)
	syncGroup.Get("/settings", admin, h.controller.ListSyncSettings)
	syncGroup.Get("/settings/:id", admin, h.controller.GetSyncSetting)
	syncGroup.Put("/settings/:id", admin, h.controller.UpdateSyncSetting)
	syncGroup.Delete("/settings/:id", admin, h.controller.DeleteSyncSetting)
	syncGroup.Post("/settings/:id/run", admin, h.controller.RunSync)
	syncGroup.Get("/settings/:id/logs", admin, h.controller.ListSyncLogs)
}
