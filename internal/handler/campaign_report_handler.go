package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// CampaignReportHandler exposes the campaign report endpoint.
type CampaignReportHandler struct {
	service  service.CampaignReportService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewCampaignReportHandler creates a new handler instance.
func NewCampaignReportHandler(service service.CampaignReportService, validate *validator.Validate, logger zerolog.Logger) *CampaignReportHandler {
	return &CampaignReportHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "campaign_report_handler").Logger(),
	}
}

// Register attaches the campaign report endpoint.
func (h *CampaignReportHandler) Register(router fiber.Router) {
	router.Get("/campaigns", h.getReport)
}

func (h *CampaignReportHandler) getReport(c *fiber.Ctx) error {
	customerID, err := customerIDFromParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	params := service.CampaignReportParams{
		Range:    dateRange,
		Statuses: splitAndTrim(c.Query("status")),
		Compare:  parseBoolQuery(c, "compare"),
	}

	report, cacheHit, err := h.service.GetReport(c.Context(), customerID, params)
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "campaigns", err)
	}
	recordCacheLookup("campaigns", cacheHit)

	return utils.SendSuccessWithMeta(c, "campaign report retrieved", report, reportMeta(cacheHit, dateRange))
}
