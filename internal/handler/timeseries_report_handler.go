package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// TimeseriesReportHandler exposes the daily series endpoint.
type TimeseriesReportHandler struct {
	service  service.TimeseriesReportService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewTimeseriesReportHandler creates a new handler instance.
func NewTimeseriesReportHandler(service service.TimeseriesReportService, validate *validator.Validate, logger zerolog.Logger) *TimeseriesReportHandler {
	return &TimeseriesReportHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "timeseries_report_handler").Logger(),
	}
}

// Register attaches the daily series endpoint.
func (h *TimeseriesReportHandler) Register(router fiber.Router) {
	router.Get("/timeseries", h.getReport)
}

func (h *TimeseriesReportHandler) getReport(c *fiber.Ctx) error {
	customerID, err := customerIDFromParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, cacheHit, err := h.service.GetReport(c.Context(), customerID, service.TimeseriesReportParams{Range: dateRange})
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "timeseries", err)
	}
	recordCacheLookup("timeseries", cacheHit)

	return utils.SendSuccessWithMeta(c, "daily series retrieved", report, reportMeta(cacheHit, dateRange))
}
