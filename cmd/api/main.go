package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fairway/fairway-api/internal/config"
	"github.com/fairway/fairway-api/internal/domain/booking"
	"github.com/fairway/fairway-api/internal/domain/catalog"
	"github.com/fairway/fairway-api/internal/domain/session"
	"github.com/fairway/fairway-api/internal/middleware"
	"github.com/fairway/fairway-api/internal/pkg/authgw"
	"github.com/fairway/fairway-api/internal/pkg/database"
	"github.com/fairway/fairway-api/internal/pkg/erp"
	"github.com/fairway/fairway-api/internal/pkg/jwt"
	pkgresponse "github.com/fairway/fairway-api/internal/pkg/response"
)

const userAgent = "fairway-api/1.0"

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Fairway API")

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.SessionTTL)

	// ---------- Upstream clients ----------
	erpClient := erp.NewClient(cfg.ERPBaseURL, time.Duration(cfg.ERPTimeoutSeconds)*time.Second, userAgent)
	gatewayClient := authgw.NewClient(cfg.AuthGatewayURL, time.Duration(cfg.AuthGatewayTimeoutSeconds)*time.Second, userAgent)

	// ---------- Services ----------
	prefsRepo := catalog.NewPreferenceRepository(redis)
	catalogService := catalog.NewService(erpClient, prefsRepo)
	bookingService := booking.NewService(erpClient)
	sessionService := session.NewService(gatewayClient, jwtService, redis, cfg.ProfileCacheTTL)

	registry := session.NewRegistry(catalogService, session.RegistryOptions{
		PageSize:  cfg.CatalogPageSize,
		LoadDelay: time.Duration(cfg.CatalogLoadDelayMs) * time.Millisecond,
		IdleTTL:   cfg.SessionIdleTTL,
	})
	registry.StartSweeper()
	defer registry.Close()

	// ---------- Handlers ----------
	catalogHandler := catalog.NewHandler(catalogService, registry)
	bookingHandler := booking.NewHandler(bookingService, registry)
	sessionHandler := session.NewHandler(sessionService, registry)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", sessionHandler.Routes(authMiddleware))
		r.Mount("/courses", catalogHandler.Routes(authMiddleware))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/flow", bookingHandler.FlowRoutes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
