package main

import (
	"context"

	"noteful/cmd/server/handlers"
	authHandlers "noteful/cmd/server/handlers/auth"
	foldersHandlers "noteful/cmd/server/handlers/folders"
	"noteful/cmd/server/handlers/handlerutil"
	"noteful/cmd/server/handlers/httperr"
	notesHandlers "noteful/cmd/server/handlers/notes"
	tagsHandlers "noteful/cmd/server/handlers/tags"
	"noteful/cmd/server/middlewares"
	"noteful/internal/clients/mongo"
	"noteful/internal/config"
	"noteful/internal/logger"
	authServices "noteful/internal/services/auth"
	foldersServices "noteful/internal/services/folders"
	notesServices "noteful/internal/services/notes"
	tagsServices "noteful/internal/services/tags"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {

	v := validator.New()
	if err := handlerutil.RegisterObjectIDValidator(v); err != nil {
		logger.L().Error("failed to register objectid validator", "err", err)
		panic(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check endpoint, outside the API prefix to avoid auth and logging
	app.Get("/healthz", handlers.Healthz)

	var api fiber.Router
	if cfg.RequestLoggingEnabled {
		api = app.Group("/api", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		api = app.Group("/api")
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)

	// Auth routes (public)
	usersRepo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create users repository", "error", err)
		panic(err)
	}
	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	api.Post("/users", authH.Register)
	api.Post("/login", authH.Login)

	// Data repositories. The notes repo doubles as the unlink/untag side of
	// folder and tag deletion.
	notesRepo, err := mongo.NewNotesRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error(notesServices.ErrCreateNotesRepo.Error(), "error", err)
		panic(err)
	}
	foldersRepo, err := mongo.NewFoldersRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create folders repository", "error", err)
		panic(err)
	}
	tagsRepo, err := mongo.NewTagsRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create tags repository", "error", err)
		panic(err)
	}

	notesSvc := notesServices.NewService(notesRepo, foldersRepo, tagsRepo, logger.L())
	foldersSvc := foldersServices.NewService(foldersRepo, notesRepo, logger.L())
	tagsSvc := tagsServices.NewService(tagsRepo, notesRepo, logger.L())

	notesH := notesHandlers.NewHandlers(notesSvc, v)
	notesGrp := api.Group("/notes", jwtMiddleware)
	notesGrp.Get("/", notesH.List)
	notesGrp.Post("/", notesH.Create)
	notesGrp.Get("/:id", notesH.Get)
	notesGrp.Put("/:id", notesH.Update)
	notesGrp.Delete("/:id", notesH.Delete)

	foldersH := foldersHandlers.NewHandlers(foldersSvc, v)
	foldersGrp := api.Group("/folders", jwtMiddleware)
	foldersGrp.Get("/", foldersH.List)
	foldersGrp.Post("/", foldersH.Create)
	foldersGrp.Get("/:id", foldersH.Get)
	foldersGrp.Put("/:id", foldersH.Rename)
	foldersGrp.Delete("/:id", foldersH.Delete)

	tagsH := tagsHandlers.NewHandlers(tagsSvc, v)
	tagsGrp := api.Group("/tags", jwtMiddleware)
	tagsGrp.Get("/", tagsH.List)
	tagsGrp.Post("/", tagsH.Create)
	tagsGrp.Get("/:id", tagsH.Get)
	tagsGrp.Put("/:id", tagsH.Rename)
	tagsGrp.Delete("/:id", tagsH.Delete)

	// Token introspection endpoint
	api.Get("/me", jwtMiddleware, handlers.Me)

	return app
}
