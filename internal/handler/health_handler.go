package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/justcarpets/ads-dashboard-api/internal/config"
	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	GoogleAds   bool      `json:"google_ads_connected"`
}

// HealthCheck returns a handler that reports application health, including a
// best-effort Google Ads connectivity flag. A vendor outage keeps the service
// itself healthy.
func HealthCheck(cfg config.Config, accounts service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		if accounts != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
			defer cancel()
			if status, err := accounts.CheckConnection(ctx); err == nil {
				payload.GoogleAds = status.Connected
			}
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
