package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"review-service/internal/api"
	"review-service/internal/config"
	"review-service/internal/events"
	"review-service/internal/jwt"
	"review-service/internal/repository"
	"review-service/internal/s3"
	"review-service/internal/service"
	"review-service/internal/tracing"
	_ "review-service/migrations"
)

const serviceName = "review-service"

func main() {
	cfg := config.Load()

	api.SetupGlobalHandler(serviceName)

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitTracerProvider(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Successfully connected to the database.")

	eventPublisher, err := events.NewNatsPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer eventPublisher.Close()
	log.Println("Successfully connected to NATS.")

	userRepo := repository.NewPostgresUserRepository(db)
	listingRepo := repository.NewPostgresListingRepository(db)
	reviewRepo := repository.NewPostgresReviewRepository(db)
	imageRepo := repository.NewPostgresImageRepository(db)
	tokenRepo := repository.NewPostgresTokenRepository(db)

	imageSubscriber, err := events.NewImageSubscriber(cfg.NATSURL, imageRepo)
	if err != nil {
		// Uploaded images will not be recorded until restart, but reads still work.
		slog.Warn("Failed to start image subscriber", "error", err)
	} else {
		defer imageSubscriber.Close()
	}

	var signer service.URLSigner
	if cfg.S3Bucket != "" {
		presigner, err := s3.NewImagePresigner(ctx, s3.Options{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
			URLTTL:       cfg.ImageURLTTL,
		})
		if err != nil {
			log.Fatalf("Failed to configure S3 presigner: %v", err)
		}
		signer = presigner
	}

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	images := service.NewImageResolver(listingRepo, imageRepo, signer)

	authService := service.NewAuthService(userRepo, tokenRepo, tokens)
	tokenService := service.NewTokenService(tokenRepo, userRepo, tokens)
	reviewService := service.NewReviewService(reviewRepo, userRepo, listingRepo, images, eventPublisher,
		service.PageSizes{Recent: cfg.RecentPageSize, Detail: cfg.DetailPageSize})
	listingService := service.NewListingService(listingRepo, reviewRepo, userRepo, images)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.SetupRoutes(app, tokens, api.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Token:   api.NewTokenHandler(tokenService),
		Review:  api.NewReviewHandler(reviewService),
		Listing: api.NewListingHandler(listingService),
	})

	go func() {
		<-ctx.Done()
		log.Println("Shutting down HTTP server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down HTTP server: %v", err)
		}
	}()

	log.Printf("Listening %s on port %s", serviceName, cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Printf("HTTP server stopped: %v", err)
	}
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
