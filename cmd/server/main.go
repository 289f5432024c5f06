// Package main is the entry point for the creamery API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creamery/internal/domain/auth"
	"creamery/internal/domain/catalog/item"
	"creamery/internal/domain/catalog/location"
	"creamery/internal/domain/ledger"
	"creamery/internal/domain/production"
	"creamery/internal/domain/session"
	"creamery/internal/domain/waste"
	v1 "creamery/internal/infrastructure/http/v1"
	"creamery/internal/infrastructure/storage/postgres"
	"creamery/internal/infrastructure/storage/postgres/auth_repo"
	"creamery/internal/infrastructure/storage/postgres/catalog_repo"
	"creamery/internal/infrastructure/storage/postgres/document_repo"
	"creamery/internal/infrastructure/storage/postgres/ledger_repo"
	"creamery/pkg/logger"
	"creamery/pkg/lotcode"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting creamery server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	itemRepo := catalog_repo.NewItemRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)
	sessionRepo := document_repo.NewSessionRepo(txManager)
	batchRepo := document_repo.NewBatchRepo(txManager)
	wasteRepo := document_repo.NewWasteRepo(txManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)

	// --- Services ---
	itemService := item.NewService(itemRepo)
	locationService := location.NewService(locationRepo)
	ledgerService := ledger.NewService(ledgerRepo)

	sessionService := session.NewService(sessionRepo, ledgerService, locationService, txManager)

	// Lot codes are allocated outside the batch transaction; a rolled-back
	// creation leaves a gap in the day's sequence.
	lotGenerator := lotcode.New(pool)
	productionCfg := production.DefaultConfig()
	productionCfg.ReverseStockOnDiscard = getEnv("REVERSE_STOCK_ON_DISCARD", "false") == "true"
	productionService := production.NewService(
		batchRepo, lotGenerator, ledgerService, itemService, locationService, txManager, productionCfg,
	)

	wasteService := waste.NewService(wasteRepo, ledgerService, productionService, locationService, txManager)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:      pool,
		TxManager: txManager,

		Logger:       log,
		JWTValidator: jwtService,

		AuthService:       authService,
		ItemService:       itemService,
		LocationService:   locationService,
		SessionService:    sessionService,
		ProductionService: productionService,
		WasteService:      wasteService,
		LedgerService:     ledgerService,

		AuditService: auditService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
