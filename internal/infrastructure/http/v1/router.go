package v1

import (
	"github.com/gin-gonic/gin"

	"creamery/internal/core/security"
	"creamery/internal/domain/auth"
	"creamery/internal/domain/catalog/item"
	"creamery/internal/domain/catalog/location"
	"creamery/internal/domain/ledger"
	"creamery/internal/domain/production"
	"creamery/internal/domain/session"
	"creamery/internal/domain/waste"
	"creamery/internal/infrastructure/http/v1/handlers"
	"creamery/internal/infrastructure/http/v1/middleware"
	"creamery/internal/infrastructure/storage/postgres"
	"creamery/pkg/logger"
)

// RouterConfig holds everything the router needs, wired up in main.
type RouterConfig struct {
	Pool      *postgres.Pool
	TxManager *postgres.TxManager

	Logger       *logger.Logger
	JWTValidator middleware.JWTValidator

	AuthService       *auth.Service
	ItemService       *item.Service
	LocationService   *location.Service
	SessionService    *session.Service
	ProductionService *production.Service
	WasteService      *waste.Service
	LedgerService     *ledger.Service

	AuditService *postgres.AuditService
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

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		public := apiV1.Group("")

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
		authHandler.RegisterRoutes(public, protected)

		// Catalogs
		catalog := protected.Group("/catalog")
		RegisterCatalogRoutes(
			catalog.Group("/items"),
			handlers.NewItemHandler(base, cfg.ItemService, cfg.AuditService),
			security.ScopeItem,
		)
		RegisterCatalogRoutes(
			catalog.Group("/locations"),
			handlers.NewLocationHandler(base, cfg.LocationService, cfg.AuditService),
			security.ScopeAdminLocation,
		)

		// Inventory sessions
		sessionHandler := handlers.NewSessionHandler(base, cfg.SessionService, cfg.AuditService)
		sessions := protected.Group("/inventory/sessions")
		{
			read := middleware.RequirePermission(security.ScopeSession, security.AccessRead)
			write := middleware.RequirePermission(security.ScopeSession, security.AccessReadWrite)

			sessions.GET("", read, sessionHandler.List)
			sessions.GET("/:id", read, sessionHandler.Get)
			sessions.POST("", write, sessionHandler.Create)
			sessions.POST("/:id/lines", write, sessionHandler.AddLine)
			sessions.POST("/:id/close", write, sessionHandler.Close)
		}

		// Production batches
		batchHandler := handlers.NewBatchHandler(base, cfg.ProductionService, cfg.AuditService)
		wasteHandler := handlers.NewWasteHandler(base, cfg.WasteService, cfg.AuditService)
		batches := protected.Group("/production/batches")
		{
			read := middleware.RequirePermission(security.ScopeBatch, security.AccessRead)
			write := middleware.RequirePermission(security.ScopeBatch, security.AccessReadWrite)

			batches.GET("", read, batchHandler.List)
			batches.GET("/:id", read, batchHandler.Get)
			batches.GET("/lot/:lotCode", read, batchHandler.GetByLotCode)
			batches.POST("", write, batchHandler.Create)
			batches.POST("/:id/complete", write, batchHandler.Complete)
			batches.POST("/:id/run-out", write, batchHandler.RunOut)
			batches.POST("/:id/discard", write, batchHandler.Discard)

			batches.GET("/:id/waste",
				middleware.RequirePermission(security.ScopeWaste, security.AccessRead),
				wasteHandler.ListByBatch)
		}

		// Waste events
		wasteEvents := protected.Group("/production/waste")
		{
			read := middleware.RequirePermission(security.ScopeWaste, security.AccessRead)
			write := middleware.RequirePermission(security.ScopeWaste, security.AccessReadWrite)

			wasteEvents.GET("", read, wasteHandler.List)
			wasteEvents.GET("/:id", read, wasteHandler.Get)
			wasteEvents.POST("", write, wasteHandler.Record)
		}

		// Stock ledger
		stockHandler := handlers.NewStockHandler(base, cfg.LedgerService, cfg.TxManager)
		stock := protected.Group("/stock")
		{
			read := middleware.RequirePermission(security.ScopeItem, security.AccessRead)

			stock.GET("/locations/:id", read, stockHandler.GetLocationStock)
			stock.GET("/items/:id", read, stockHandler.GetItemStock)
			stock.GET("/items/:id/availability", read, stockHandler.GetAvailability)
			stock.GET("/items/:id/movements", read, stockHandler.GetMovementHistory)
			stock.GET("/below-par", read, stockHandler.GetBelowPar)
			stock.GET("/movements/recorder/:id", read, stockHandler.GetRecorderMovements)

			// Manual corrections bypass the usual documents; restricted to
			// holders of the item read-write grant (admins by default).
			stock.POST("/adjust",
				middleware.RequirePermission(security.ScopeItem, security.AccessReadWrite),
				stockHandler.Adjust)
		}
	}

	return router
}
