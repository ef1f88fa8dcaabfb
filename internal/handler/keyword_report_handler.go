package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// KeywordReportHandler exposes the keyword report endpoint.
type KeywordReportHandler struct {
	service  service.KeywordReportService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewKeywordReportHandler creates a new handler instance.
func NewKeywordReportHandler(service service.KeywordReportService, validate *validator.Validate, logger zerolog.Logger) *KeywordReportHandler {
	return &KeywordReportHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "keyword_report_handler").Logger(),
	}
}

// Register attaches the keyword report endpoint.
func (h *KeywordReportHandler) Register(router fiber.Router) {
	router.Get("/keywords", h.getReport)
}

func (h *KeywordReportHandler) getReport(c *fiber.Ctx) error {
	customerID, err := customerIDFromParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	report, cacheHit, err := h.service.GetReport(c.Context(), customerID, service.KeywordReportParams{
		Range: dateRange,
		Limit: limit,
	})
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "keywords", err)
	}
	recordCacheLookup("keywords", cacheHit)

	return utils.SendSuccessWithMeta(c, "keyword report retrieved", report, reportMeta(cacheHit, dateRange))
}
