package handler

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// AdGroupReportHandler exposes the ad group report endpoint.
type AdGroupReportHandler struct {
	service  service.AdGroupReportService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAdGroupReportHandler creates a new handler instance.
func NewAdGroupReportHandler(service service.AdGroupReportService, validate *validator.Validate, logger zerolog.Logger) *AdGroupReportHandler {
	return &AdGroupReportHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "adgroup_report_handler").Logger(),
	}
}

// Register attaches the ad group report endpoint.
func (h *AdGroupReportHandler) Register(router fiber.Router) {
	router.Get("/adgroups", h.getReport)
}

func (h *AdGroupReportHandler) getReport(c *fiber.Ctx) error {
	customerID, err := customerIDFromParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	campaignID := c.Query("campaign_id")
	if campaignID != "" {
		if _, err := strconv.ParseInt(campaignID, 10, 64); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid campaign id")
		}
	}

	report, cacheHit, err := h.service.GetReport(c.Context(), customerID, service.AdGroupReportParams{
		Range:      dateRange,
		CampaignID: campaignID,
	})
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "adgroups", err)
	}
	recordCacheLookup("adgroups", cacheHit)

	return utils.SendSuccessWithMeta(c, "ad group report retrieved", report, reportMeta(cacheHit, dateRange))
}
