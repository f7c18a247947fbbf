package main

import (
	"context"
	"fmt"
	common_api "go-hiring/internal/common/api"
	"go-hiring/internal/config"
	"go-hiring/internal/database"
	"go-hiring/internal/features/aging"
	"go-hiring/internal/features/approval"
	"go-hiring/internal/features/audit"
	"go-hiring/internal/features/auth"
	"go-hiring/internal/features/dashboard"
	"go-hiring/internal/features/org"
	"go-hiring/internal/features/requisition"
	"go-hiring/internal/features/sync"
	"go-hiring/internal/features/user"
	"go-hiring/internal/features/workflow"
	"go-hiring/internal/logger"
	"go-hiring/internal/middleware"
	"go-hiring/pkg/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	// Add Holding middleware to extract X-Holding-Id header
	app.Use(middleware.HoldingMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, rqRepo requisition.RequisitionRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := rqRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure requisition indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			user.NewUserRepository,
			org.NewOrgRepository,
			audit.NewAuditRepository,
			workflow.NewWorkflowRepository,
			requisition.NewRequisitionRepository,
			sync.NewSyncSettingRepository,
			sync.NewSyncLogRepository,

			audit.NewAuditService,
			auth.NewAuthService,
			org.NewDirectory,
			workflow.NewWorkflowService,
			requisition.NewRequisitionService,
			approval.NewApprovalService,
			dashboard.NewHub,
			dashboard.NewDashboardService,
			sync.NewSyncService,
			aging.NewSweeper,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r user.UserRepository) audit.UserFinder { return r },
			func(r user.UserRepository) org.UserFinder { return r },
			func(d *org.Directory) approval.OrgDirectory { return d },
			func(h *dashboard.Hub) approval.Publisher { return h },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			org.NewOrgController,
			audit.NewAuditController,
			workflow.NewWorkflowController,
			requisition.NewRequisitionController,
			approval.NewApprovalController,
			dashboard.NewDashboardController,
			sync.NewSyncController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(org.NewOrgApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(workflow.NewWorkflowApi),
			AsRoute(requisition.NewRequisitionApi),
			AsRoute(approval.NewApprovalApi),
			AsRoute(dashboard.NewDashboardApi),
			AsRoute(sync.NewSyncApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, sweeper *aging.Sweeper) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return sweeper.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return sweeper.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
