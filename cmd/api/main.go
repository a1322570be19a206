package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashformance/leads-api/internal/api"
	"dashformance/leads-api/internal/api/middleware"
	"dashformance/leads-api/internal/config"
	"dashformance/leads-api/internal/handlers"
	"dashformance/leads-api/internal/logger"
	"dashformance/leads-api/internal/ratelimit"
	"dashformance/leads-api/internal/services"

	_ "dashformance/leads-api/docs" // Swagger generated docs

	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// @title Dashformance Leads API
// @version 1.0
// @description Lead management for the Dashformance dashboard: CRUD, soft delete, duplicate cleanup, lead division, statistics and deep discovery from the Casa dos Dados company registry.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
func main() {
	// Load configuration from environment variables
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStart()

	store, closeStore := openStore(startCtx, cfg, log)
	defer closeStore()

	// Initialize the registry client, with an optional Redis details cache
	casaDados := handlers.NewCasaDadosHandler(cfg.CasaDadosAPIKey, cfg.CasaDadosSearchURL, cfg.CasaDadosDetailsURL, log)
	if !casaDados.Configured() {
		log.Warn("CASA_DADOS_API_KEY not set - extraction endpoints will answer 500")
	}
	if cfg.RedisAddr != "" {
		client, err := handlers.NewRedisClient(startCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable - continuing without details cache")
		} else {
			defer client.Close()
			casaDados.SetDetailsCache(handlers.NewDetailsCache(client, cfg.DetailsCacheTTL, log))
			log.WithField("addr", cfg.RedisAddr).Info("Details cache enabled")
		}
	}

	throttle := ratelimit.NewThrottle(cfg.EnrichMaxConcurrent, cfg.EnrichMinDelay, ratelimit.DefaultJitter)
	log.WithFields(logrus.Fields{
		"max_concurrent": throttle.MaxConcurrent(),
		"min_delay":      cfg.EnrichMinDelay.String(),
	}).Info("Enrichment throttle configured")

	leadsService := services.NewLeadsService(store, cfg.Owners, log)
	extractionService := services.NewExtractionService(casaDados, leadsService, store, throttle, log)
	statsService := services.NewStatsService(store, cfg.Owners, log)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	if cfg.AppPassword == "" {
		log.Warn("APP_PASSWORD not set - authentication disabled")
	}

	// Setup router
	router := api.NewRouter(api.Dependencies{
		Extractor:    extractionService,
		Leads:        leadsService,
		Stats:        statsService,
		RateLimiter:  rateLimiter,
		Logger:       log,
		AppPassword:  cfg.AppPassword,
		SecureCookie: cfg.SecureCookie,
	})

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler(router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting...")
		log.Infof("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// openStore picks Postgres when DATABASE_URL is set, Supabase otherwise
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (services.LeadStore, func()) {
	if cfg.DatabaseURL != "" {
		pg, err := handlers.NewPostgresHandler(ctx, cfg.DatabaseURL, cfg.LeadsTable, log)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		log.WithField("table", cfg.LeadsTable).Info("PostgresHandler initialized - direct database access enabled")
		return pg, func() { _ = pg.Close() }
	}

	if cfg.SupabaseURL != "" && cfg.SupabaseKey != "" {
		sb, err := handlers.NewSupabaseHandler(cfg.SupabaseURL, cfg.SupabaseKey, cfg.LeadsTable, log)
		if err != nil {
			log.Fatalf("Failed to initialize SupabaseHandler: %v", err)
		}
		log.WithField("table", cfg.LeadsTable).Info("SupabaseHandler initialized - database access enabled")
		return sb, func() {}
	}

	log.Fatal("DATABASE_URL or SUPABASE_URL and SUPABASE_SECRET_KEY are required")
	return nil, nil
}
