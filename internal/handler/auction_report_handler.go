package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// AuctionReportHandler exposes the auction insights endpoint.
type AuctionReportHandler struct {
	service  service.AuctionReportService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuctionReportHandler creates a new handler instance.
func NewAuctionReportHandler(service service.AuctionReportService, validate *validator.Validate, logger zerolog.Logger) *AuctionReportHandler {
	return &AuctionReportHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "auction_report_handler").Logger(),
	}
}

// Register attaches the auction insights endpoint.
func (h *AuctionReportHandler) Register(router fiber.Router) {
	router.Get("/auctions", h.getReport)
}

func (h *AuctionReportHandler) getReport(c *fiber.Ctx) error {
	customerID, err := customerIDFromParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, cacheHit, err := h.service.GetReport(c.Context(), customerID, service.AuctionReportParams{Range: dateRange})
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "auctions", err)
	}
	recordCacheLookup("auctions", cacheHit)

	return utils.SendSuccessWithMeta(c, "auction insights retrieved", report, reportMeta(cacheHit, dateRange))
}
