package main

import (
	"context"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/config"
	"go-hiring/internal/database"
	"go-hiring/internal/features/org"
	"go-hiring/internal/features/user"
	"go-hiring/internal/features/workflow"
	"go-hiring/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads a small demo dataset: one holding with its org tree, the
// users occupying its roles, and a default three-step approval template.
// Safe to rerun; existing users are matched by email and reused.
func Seed(
	lc fx.Lifecycle,
	orgRepo org.OrgRepository,
	userRepo user.UserRepository,
	workflowRepo workflow.WorkflowRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo data...")

				seedUser := func(username, email, name string, roles []string) *common_models.User {
					existing, err := userRepo.FindByEmail(ctx, email)
					if err != nil {
						logger.Fatal("Failed to look up user", zap.String("email", email), zap.Error(err))
					}
					if existing != nil {
						logger.Info("User exists, skipping", zap.String("email", email))
						return existing
					}

					hash, _ := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
					u := &common_models.User{
						Username:     username,
						Email:        email,
						Name:         name,
						PasswordHash: string(hash),
						Roles:        roles,
						Active:       true,
						CreatedAt:    time.Now(),
						UpdatedAt:    time.Now(),
					}
					if err := userRepo.Create(ctx, u); err != nil {
						logger.Fatal("Failed to create user", zap.String("email", email), zap.Error(err))
					}
					logger.Info("User created", zap.String("email", email))
					return u
				}

				admin := seedUser("admin", "admin@demo.local", "Admin", []string{"admin"})
				lead := seedUser("rrhh.lead", "rrhh.lead@demo.local", "Recruitment Lead", []string{"rrhh"})
				gerente := seedUser("gerente.ops", "gerente.ops@demo.local", "Operations Gerente", []string{"approver"})
				areaMgr := seedUser("jefe.tienda", "jefe.tienda@demo.local", "Store Area Manager", []string{"approver"})
				requester := seedUser("requester", "requester@demo.local", "Store Requester", []string{"requester"})

				holding := &org.Holding{
					ID:                    primitive.NewObjectID(),
					Name:                  "Demo Holding",
					RecruitmentLeadUserID: lead.ID.Hex(),
					Active:                true,
				}
				if err := orgRepo.CreateHolding(ctx, holding); err != nil {
					logger.Fatal("Failed to create holding", zap.Error(err))
				}

				gerencia := &org.Gerencia{
					Name:          "Operaciones",
					HoldingID:     holding.ID.Hex(),
					ManagerUserID: gerente.ID.Hex(),
				}
				if err := orgRepo.CreateGerencia(ctx, gerencia); err != nil {
					logger.Fatal("Failed to create gerencia", zap.Error(err))
				}

				area := &org.Area{
					Name:          "Tiendas Norte",
					GerenciaID:    gerencia.ID.Hex(),
					ManagerUserID: areaMgr.ID.Hex(),
				}
				if err := orgRepo.CreateArea(ctx, area); err != nil {
					logger.Fatal("Failed to create area", zap.Error(err))
				}

				puesto := &org.Puesto{
					Name:   "Vendedor",
					AreaID: area.ID.Hex(),
				}
				if err := orgRepo.CreatePuesto(ctx, puesto); err != nil {
					logger.Fatal("Failed to create puesto", zap.Error(err))
				}

				template := &workflow.WorkflowTemplate{
					ID:        primitive.NewObjectID(),
					Name:      "Standard Hiring",
					Slug:      "standard-hiring",
					HoldingID: holding.ID.Hex(),
					Active:    true,
					Steps: []workflow.WorkflowStep{
						{ID: primitive.NewObjectID().Hex(), Order: 1, Name: "Area Manager", ApproverType: workflow.ApproverAreaManager},
						{ID: primitive.NewObjectID().Hex(), Order: 2, Name: "Gerencia Manager", ApproverType: workflow.ApproverGerenciaManager},
						{ID: primitive.NewObjectID().Hex(), Order: 3, Name: "Recruitment Lead", ApproverType: workflow.ApproverRecruitmentLead},
					},
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				if err := workflowRepo.Create(ctx, template); err != nil {
					logger.Fatal("Failed to create workflow template", zap.Error(err))
				}
				if err := workflowRepo.SetDefault(ctx, holding.ID.Hex(), template.ID.Hex()); err != nil {
					logger.Fatal("Failed to set default template", zap.Error(err))
				}

				logger.Info("Seeding complete",
					zap.String("holding", holding.ID.Hex()),
					zap.String("puesto", puesto.ID.Hex()),
					zap.String("template", template.ID.Hex()),
					zap.String("admin", admin.Email),
					zap.String("requester", requester.Email),
				)
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			org.NewOrgRepository,
			user.NewUserRepository,
			workflow.NewWorkflowRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
