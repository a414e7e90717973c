package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/dimitrije/gostays-api/internal/config"
	"github.com/dimitrije/gostays-api/internal/database"
	"github.com/dimitrije/gostays-api/internal/geocode"
	"github.com/dimitrije/gostays-api/internal/handlers"
	"github.com/dimitrije/gostays-api/internal/identity"
	authmw "github.com/dimitrije/gostays-api/internal/middleware"
	"github.com/dimitrije/gostays-api/internal/services"
	"github.com/dimitrije/gostays-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	sessionService, err := services.NewSessionService(cfg.IdP.JWTPublicKey, cfg.IdP.Issuer)
	if err != nil {
		log.Fatalf("Failed to initialize session verification: %v", err)
	}

	userService := services.NewUserService(db)
	listingService := services.NewListingService(db)
	reviewService := services.NewReviewService(db)

	var verifier *identity.Verifier
	if cfg.IdP.WebhookSecret != "" {
		verifier, err = identity.NewVerifier(cfg.IdP.WebhookSecret)
		if err != nil {
			log.Fatalf("Failed to initialize webhook verifier: %v", err)
		}
	} else {
		logger.Warn("IDP_WEBHOOK_SIGNING_SECRET not set, webhook deliveries will be acknowledged but not processed")
	}

	reconciler := identity.NewReconciler(userService, logger)
	geocoder := geocode.NewTomTomClient(cfg.Geocode)

	webhookHandler := handlers.NewWebhookHandler(verifier, reconciler, logger)
	userHandler := handlers.NewUserHandler()
	listingHandler := handlers.NewListingHandler(listingService, reviewService, geocoder, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, listingService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientURL},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	api.Post("/webhooks/idp", webhookHandler.HandleIdPEvent)

	api.Get("/listings", listingHandler.List)
	api.Get("/listings/:id", listingHandler.Get)

	protected := api.Group("")
	protected.Use(authmw.Auth(sessionService))
	protected.Use(authmw.LazySync(reconciler, logger))

	protected.Get("/users/me", userHandler.GetMe)

	protected.Post("/listings", listingHandler.Create)
	protected.Patch("/listings/:id", listingHandler.Update)
	protected.Delete("/listings/:id", listingHandler.Delete)

	protected.Post("/listings/:id/reviews", reviewHandler.Create)
	protected.Delete("/listings/:id/reviews/:reviewId", reviewHandler.Delete)

	if cfg.Storage.AccessKey != "" {
		imageStore, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize image storage: %v", err)
		}
		uploadHandler := handlers.NewUploadHandler(imageStore)
		protected.Post("/uploads", uploadHandler.UploadImage)
	} else {
		logger.Warn("STORAGE_ACCESS_KEY not set, image uploads disabled")
	}

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
