package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// MccOverviewHandler exposes the multi-account rollup endpoint.
type MccOverviewHandler struct {
	service  service.MccOverviewService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewMccOverviewHandler creates a new handler instance.
func NewMccOverviewHandler(service service.MccOverviewService, validate *validator.Validate, logger zerolog.Logger) *MccOverviewHandler {
	return &MccOverviewHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("component", "mcc_overview_handler").Logger(),
	}
}

// Register attaches the overview endpoint.
func (h *MccOverviewHandler) Register(router fiber.Router) {
	router.Get("/overview", h.getOverview)
}

func (h *MccOverviewHandler) getOverview(c *fiber.Ctx) error {
	dateRange, err := parseDateRange(c, h.validate)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	overview, cacheHit, err := h.service.GetOverview(c.Context(), service.MccOverviewParams{Range: dateRange})
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "mcc_overview", err)
	}
	recordCacheLookup("mcc_overview", cacheHit)

	return utils.SendSuccessWithMeta(c, "mcc overview retrieved", overview, reportMeta(cacheHit, dateRange))
}
