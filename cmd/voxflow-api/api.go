// Package main provides the Voxflow API server implementation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/voxflow/voxflow/pkg/composer"
	"github.com/voxflow/voxflow/pkg/integrations/facebook"
	"github.com/voxflow/voxflow/pkg/otelhelper"
	"github.com/voxflow/voxflow/pkg/persistence"
	"github.com/voxflow/voxflow/pkg/services"
	"github.com/voxflow/voxflow/pkg/web"
)

type API struct {
	logger         *slog.Logger
	persistence    persistence.Persistence
	cache          redis.UniversalClient
	commandBus     *composer.CommandBus
	facebookClient *facebook.Client
	validate       *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	cache redis.UniversalClient,
	facebookAccessToken string,
) *API {
	var facebookClient *facebook.Client
	if facebookAccessToken != "" {
		facebookClient = facebook.NewClient(facebookAccessToken, logger)
	}

	return &API{
		logger:         logger,
		persistence:    persistence,
		cache:          cache,
		commandBus:     composer.NewCommandBus(logger),
		facebookClient: facebookClient,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	workflowService := services.NewWorkflow(a.persistence)
	nodeService := services.NewNode(a.persistence)
	adminService := services.NewAdmin(a.persistence, a.logger)
	whitelabelService := services.NewWhitelabel(a.persistence, a.cache)
	conversationsService := services.NewConversations(a.persistence)

	handlers := web.NewAPIHandlers(
		workflowService,
		nodeService,
		adminService,
		whitelabelService,
		conversationsService,
		a.persistence,
		a.validate,
		a.commandBus,
		a.facebookClient,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Voxflow API")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.CreateWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Patch("/:id", handlers.UpdateWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Put("/:id/graph", handlers.SaveWorkflowGraph)
	w.Post("/:id/status", handlers.SetWorkflowStatus)

	// Graph composer endpoints:
	w.Post("/:id/nodes", handlers.CreateNode)
	w.Patch("/:id/nodes/:nodeId", handlers.UpdateNode)
	w.Delete("/:id/nodes/:nodeId", handlers.DeleteNode)
	w.Post("/:id/nodes/:nodeId/duplicate", handlers.DuplicateNode)
	w.Post("/:id/edges", handlers.CreateEdge)
	w.Delete("/:id/edges/:edgeId", handlers.DeleteEdge)

	app.Get("/catalog", handlers.GetCatalog)
	app.Get("/catalog/variables", handlers.GetVariables)
	app.Post("/catalog/validate", handlers.ValidateNodeConfig)

	app.Get("/conversations", handlers.GetConversations)
	app.Get("/conversations/:phone", handlers.GetConversation)

	admin := app.Group("/admin")
	admin.Get("/users", handlers.GetUsers)
	admin.Delete("/users/:userId", handlers.DeleteUser)
	admin.Post("/support-sessions/:sessionId/end", handlers.EndSupportSession)

	wl := app.Group("/whitelabel")
	wl.Get("/", handlers.GetSettings)
	wl.Put("/", handlers.UpdateSettings)
	wl.Post("/activate", handlers.ActivateSettings)
	wl.Get("/slug-availability", handlers.CheckSlug)

	app.Get("/connections", handlers.GetConnections)

	fb := app.Group("/integrations/facebook")
	fb.Get("/pages", handlers.GetFacebookPages)
	fb.Get("/pages/:pageId/forms", handlers.GetFacebookLeadForms)
	fb.Post("/pages/:pageId/subscribe", handlers.SubscribeFacebookPage)
	fb.Post("/test-lead", handlers.SendFacebookTestLead)

	app.Get("/health", handlers.HealthCheck)

	return app
}

// Start runs the HTTP server and a command-bus drain that records every
// composer mutation published by the handlers.
func (a *API) Start(ctx context.Context, port int) error {
	commands, err := a.commandBus.Subscribe(ctx)
	if err != nil {
		return err
	}

	tracer := otel.Tracer("voxflow-api")

	go func() {
		for cmd := range commands {
			_, span := otelhelper.StartSpan(ctx, tracer, "composer.command "+string(cmd.Type),
				attribute.String(otelhelper.WorkflowIDKey, cmd.WorkflowID),
				attribute.String(otelhelper.NodeIDKey, cmd.NodeID),
			)

			if !cmd.Type.IsValid() {
				otelhelper.SetError(span, fmt.Errorf("unknown command type %q", cmd.Type))
				a.logger.WarnContext(ctx, "Dropping unknown composer command", "type", cmd.Type)
				span.End()

				continue
			}

			a.logger.InfoContext(ctx, "Composer command",
				"type", cmd.Type,
				"workflow_id", cmd.WorkflowID,
				"node_id", cmd.NodeID,
			)

			span.End()
		}
	}()

	app := a.App()

	err = app.Listen(":" + strconv.Itoa(port))

	return err
}

func (a *API) Close() {
	if err := a.commandBus.Close(); err != nil {
		a.logger.Error("Failed to close command bus", "error", err)
	}
}
