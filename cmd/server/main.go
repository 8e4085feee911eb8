package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/atharvapisal16/household-ledger/internal/adapter/http"
	"github.com/atharvapisal16/household-ledger/internal/adapter/http/handler"
	"github.com/atharvapisal16/household-ledger/internal/adapter/repository/csvfile"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/auth"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/config"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/logger"
	"github.com/atharvapisal16/household-ledger/internal/infrastructure/metrics"
	"github.com/atharvapisal16/household-ledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	// Prepare the data directory
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data directory")
	}
	log.Info().Str("dir", cfg.DataDir).Msg("using data directory")

	// Initialize repositories
	credRepo := csvfile.NewCredentialRepository(cfg.DataDir)
	expenseRepo := csvfile.NewExpenseRepository(cfg.DataDir)
	idGen := csvfile.NewULIDGenerator()

	// Initialize use cases
	userUC := usecase.NewUserUseCase(credRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, idGen)
	reportUC := usecase.NewReportUseCase(expenseRepo)

	// Infrastructure
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	appMetrics := metrics.New()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager, appMetrics)
	expenseHandler := handler.NewExpenseHandler(expenseUC, appMetrics)
	reportHandler := handler.NewReportHandler(reportUC, appMetrics)
	healthHandler := handler.NewHealthHandler(cfg.DataDir)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:    authHandler,
		ExpenseHandler: expenseHandler,
		ReportHandler:  reportHandler,
		HealthHandler:  healthHandler,
		JWTManager:     jwtManager,
		Logger:         appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
