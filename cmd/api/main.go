package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/cache"
	"github.com/justcarpets/ads-dashboard-api/internal/config"
	"github.com/justcarpets/ads-dashboard-api/internal/database"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
	"github.com/justcarpets/ads-dashboard-api/internal/handler"
	"github.com/justcarpets/ads-dashboard-api/internal/middleware"
	"github.com/justcarpets/ads-dashboard-api/internal/router"
	"github.com/justcarpets/ads-dashboard-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	registry, err := config.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("failed to load account registry: %v", err)
	}

	adsClient, err := googleads.New(googleads.Config{
		DeveloperToken: cfg.DeveloperToken,
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		RefreshToken:   cfg.RefreshToken,
		LoginCustomer:  cfg.MCCCustomerID,
		Endpoint:       cfg.APIEndpoint,
		APIVersion:     cfg.APIVersion,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create google ads client: %v", err)
	}

	var store cache.Store = cache.NewMemory(cfg.ReportCacheTTL)
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		store = cache.NewRedis(redisClient, logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	ttl := cfg.ReportCacheTTL

	accountService := service.NewAccountService(adsClient, registry, cfg.MCCCustomerID, store, ttl, logger)
	campaignService := service.NewCampaignReportService(adsClient, store, ttl, logger)
	adGroupService := service.NewAdGroupReportService(adsClient, store, ttl, logger)
	keywordService := service.NewKeywordReportService(adsClient, store, ttl, logger)
	shoppingService := service.NewShoppingReportService(adsClient, store, ttl, logger)
	auctionService := service.NewAuctionReportService(adsClient, store, ttl, logger)
	timeseriesService := service.NewTimeseriesReportService(adsClient, store, ttl, logger)
	mccService := service.NewMccOverviewService(adsClient, registry, store, ttl, cfg.FanoutWorkers, logger)

	var jwtMiddleware fiber.Handler
	if cfg.JWTSecret != "" {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AccountService:    accountService,
		AccountHandler:    handler.NewAccountHandler(accountService, logger),
		CampaignHandler:   handler.NewCampaignReportHandler(campaignService, validate, logger),
		AdGroupHandler:    handler.NewAdGroupReportHandler(adGroupService, validate, logger),
		KeywordHandler:    handler.NewKeywordReportHandler(keywordService, validate, logger),
		ShoppingHandler:   handler.NewShoppingReportHandler(shoppingService, validate, logger),
		AuctionHandler:    handler.NewAuctionReportHandler(auctionService, validate, logger),
		TimeseriesHandler: handler.NewTimeseriesReportHandler(timeseriesService, validate, logger),
		MccHandler:        handler.NewMccOverviewHandler(mccService, validate, logger),
		JWTMiddleware:     jwtMiddleware,
		RateLimiter:       middleware.RateLimit("reports", cfg.RateLimitMax, cfg.RateLimitWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
