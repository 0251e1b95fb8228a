// @title Dompet API
// @version 1.0
// @description Ledger backend for the Dompet personal finance app
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dompet-app/dompet-backend/internal/config"
	"github.com/dompet-app/dompet-backend/internal/handler"
	"github.com/dompet-app/dompet-backend/internal/messaging"
	"github.com/dompet-app/dompet-backend/internal/middleware"
	"github.com/dompet-app/dompet-backend/internal/repository/postgres"
	"github.com/dompet-app/dompet-backend/internal/repository/sqlite"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Apply database migrations before opening the pool
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Device-local preferences
	preferenceStore, err := sqlite.NewPreferenceStore(cfg.PreferencesDBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PreferencesDBPath).Msg("Failed to open preference store")
	}
	defer preferenceStore.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	// Change events reach local clients through the hub, and other
	// instances through the relay when one is configured
	hub := websocket.NewHub()
	var publisher websocket.EventPublisher = hub

	relayCtx, stopRelay := context.WithCancel(context.Background())
	defer stopRelay()
	if cfg.AMQP.Enabled() {
		relay, err := messaging.NewRelay(cfg.AMQP.URL, cfg.AMQP.Exchange, hub)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer relay.Close()
		go func() {
			if err := relay.Run(relayCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("AMQP relay stopped")
			}
		}()
		publisher = relay
	}

	// Initialize services
	workspaceService := service.NewWorkspaceService(workspaceRepo)
	workspaceService.SetEventPublisher(publisher)
	authService := service.NewAuthService(userRepo, workspaceService)
	accountService := service.NewAccountService(accountRepo)
	accountService.SetEventPublisher(publisher)
	categoryService := service.NewCategoryService(categoryRepo)
	categoryService.SetEventPublisher(publisher)
	transactionService := service.NewTransactionService(transactionRepo, accountRepo, categoryRepo, workspaceRepo)
	transactionService.SetEventPublisher(publisher)
	preferenceService := service.NewPreferenceService(preferenceStore)
	ledgerStore := service.NewLedgerStore(workspaceRepo, accountRepo, categoryRepo, transactionRepo, hub)
	summaryService := service.NewSummaryService(ledgerStore)

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket token validator")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService, workspaceService, preferenceService),
		Preference:  handler.NewPreferenceHandler(preferenceService, workspaceService),
		Workspace:   handler.NewWorkspaceHandler(workspaceService),
		Account:     handler.NewAccountHandler(accountService, summaryService),
		Category:    handler.NewCategoryHandler(categoryService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Summary:     handler.NewSummaryHandler(summaryService),
		WebSocket:   handler.NewWebSocketHandler(hub, wsValidator, ledgerStore, preferenceService, workspaceService, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"wsClients": hub.TotalClientCount(),
		})
	})

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, workspaceService, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Bool("amqp_relay", cfg.AMQP.Enabled()).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stopRelay()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
