package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// ShoppingReportHandler exposes the shopping report endpoint.
type ShoppingReportHandler struct {
	service  service.ShoppingReportService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewShoppingReportHandler creates a new handler instance.
func NewShoppingReportHandler(service service.ShoppingReportService, validate *validator.Validate, logger zerolog.Logger) *ShoppingReportHandler {
	return &ShoppingReportHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "shopping_report_handler").Logger(),
	}
}

// Register attaches the shopping report endpoint.
func (h *ShoppingReportHandler) Register(router fiber.Router) {
	router.Get("/shopping", h.getReport)
}

func (h *ShoppingReportHandler) getReport(c *fiber.Ctx) error {
	customerID, err := customerIDFromParams(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid customer id")
	}

	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, cacheHit, err := h.service.GetReport(c.Context(), customerID, service.ShoppingReportParams{Range: dateRange})
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "shopping", err)
	}
	recordCacheLookup("shopping", cacheHit)

	return utils.SendSuccessWithMeta(c, "shopping report retrieved", report, reportMeta(cacheHit, dateRange))
}
