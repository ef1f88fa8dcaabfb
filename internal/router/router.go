package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/justcarpets/ads-dashboard-api/internal/config"
	"github.com/justcarpets/ads-dashboard-api/internal/handler"
	"github.com/justcarpets/ads-dashboard-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AccountService    service.AccountService
	AccountHandler    *handler.AccountHandler
	CampaignHandler   *handler.CampaignReportHandler
	AdGroupHandler    *handler.AdGroupReportHandler
	KeywordHandler    *handler.KeywordReportHandler
	ShoppingHandler   *handler.ShoppingReportHandler
	AuctionHandler    *handler.AuctionReportHandler
	TimeseriesHandler *handler.TimeseriesReportHandler
	MccHandler        *handler.MccOverviewHandler
	JWTMiddleware     fiber.Handler
	RateLimiter       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.AccountService))

	// Report routes are rate limited and, when a JWT secret is configured,
	// require a bearer token.
	protected := api.Group("")
	if deps.RateLimiter != nil {
		protected.Use(deps.RateLimiter)
	}
	if deps.JWTMiddleware != nil {
		protected.Use(deps.JWTMiddleware)
	}

	if deps.AccountHandler != nil {
		deps.AccountHandler.Register(protected)
	}

	account := protected.Group("/accounts/:customerId")
	if deps.CampaignHandler != nil {
		deps.CampaignHandler.Register(account)
	}
	if deps.AdGroupHandler != nil {
		deps.AdGroupHandler.Register(account)
	}
	if deps.KeywordHandler != nil {
		deps.KeywordHandler.Register(account)
	}
	if deps.ShoppingHandler != nil {
		deps.ShoppingHandler.Register(account)
	}
	if deps.AuctionHandler != nil {
		deps.AuctionHandler.Register(account)
	}
	if deps.TimeseriesHandler != nil {
		deps.TimeseriesHandler.Register(account)
	}

	if deps.MccHandler != nil {
		mcc := protected.Group("/mcc")
		deps.MccHandler.Register(mcc)
	}
}
