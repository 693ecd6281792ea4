// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"junkshop/internal/domain/catalogs/itemgoal"
	"junkshop/internal/domain/documents/purchase"
	"junkshop/internal/domain/documents/shipment"
	"junkshop/internal/domain/registers/processed"
	"junkshop/internal/infrastructure/http/v1/handlers"
	"junkshop/internal/infrastructure/http/v1/middleware"
	"junkshop/internal/infrastructure/storage/postgres"
	"junkshop/internal/infrastructure/storage/postgres/catalog_repo"
	"junkshop/internal/infrastructure/storage/postgres/document_repo"
	"junkshop/internal/infrastructure/storage/postgres/register_repo"
	"junkshop/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks).
	Pool *postgres.Pool

	// TxManager drives transactions for all repositories.
	TxManager *postgres.TxManager

	// Audit stores and reads the shipment status trail.
	Audit *postgres.TransitionAudit

	// Logger for request logging.
	Logger *logger.Logger

	// Shipment configures the status machine.
	Shipment shipment.Config
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no scope required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1 — every route below carries an organization scope.
	api := router.Group("/api/v1")
	api.Use(middleware.Scope())
	{
		registerCatalogRoutes(api, cfg)
		registerRegisterRoutes(api, cfg)
		registerDocumentRoutes(api, cfg)
	}

	return router
}

func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	registerRepo := register_repo.NewProcessedRepo(cfg.TxManager)
	registerService := processed.NewService(registerRepo)

	goalRepo := catalog_repo.NewItemGoalRepo(cfg.TxManager)
	goalService := itemgoal.NewService(goalRepo, registerService, cfg.TxManager)
	goalHandler := handlers.NewItemGoalHandler(baseHandler, goalService)

	goals := rg.Group("/catalog/item-goals")
	{
		goals.POST("", goalHandler.Create)
		goals.GET("", goalHandler.List)
		goals.GET("/:id", goalHandler.Get)
		goals.PUT("/:id", goalHandler.Update)
		goals.DELETE("/:id", goalHandler.Delete)
		goals.GET("/:id/card", goalHandler.Card)
	}
}

func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	repo := register_repo.NewProcessedRepo(cfg.TxManager)
	service := processed.NewService(repo)
	handler := handlers.NewProcessedHandler(baseHandler, service)

	registers := rg.Group("/registers/processed")
	{
		registers.POST("", handler.Record)
		registers.GET("", handler.List)
		registers.GET("/total", handler.Total)
	}
}

func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	// --- DROP-OFFS ---
	{
		repo := document_repo.NewPurchaseRepo(cfg.TxManager)
		service := purchase.NewService(repo, cfg.TxManager)
		handler := handlers.NewPurchaseHandler(baseHandler, service)

		dropoffs := rg.Group("/document/dropoffs")
		dropoffs.POST("", handler.Commit)
		dropoffs.GET("", handler.List)
		dropoffs.GET("/:id", handler.Get)
	}

	// --- SHIPMENTS ---
	{
		repo := document_repo.NewShipmentRepo(cfg.TxManager)
		service := shipment.NewService(repo, cfg.Audit, cfg.TxManager, cfg.Shipment)
		handler := handlers.NewShipmentHandler(baseHandler, service, cfg.Audit)

		shipments := rg.Group("/document/shipments")
		shipments.POST("", handler.Create)
		shipments.GET("", handler.List)
		shipments.GET("/:id", handler.Get)
		shipments.POST("/:id/transition", handler.Transition)
		shipments.POST("/:id/complete", handler.Complete)
		shipments.GET("/:id/summary", handler.Summary)
		shipments.GET("/:id/transitions", handler.History)
	}
}
