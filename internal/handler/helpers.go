package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/config"
	"github.com/justcarpets/ads-dashboard-api/internal/googleads"
	"github.com/justcarpets/ads-dashboard-api/internal/middleware"
	"github.com/justcarpets/ads-dashboard-api/internal/observability"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

type dateRangeQuery struct {
	Preset string `validate:"omitempty,oneof=TODAY YESTERDAY LAST_7_DAYS LAST_14_DAYS LAST_30_DAYS THIS_MONTH LAST_MONTH"`
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
}

// parseDateRange reads range/from/to query params and resolves the reporting
// window. Returns a fiber error response via the bool when parsing fails.
func parseDateRange(c *fiber.Ctx, validate *validator.Validate) (googleads.DateRange, error) {
	query := dateRangeQuery{
		Preset: strings.ToUpper(strings.TrimSpace(c.Query("range"))),
		From:   strings.TrimSpace(c.Query("from")),
		To:     strings.TrimSpace(c.Query("to")),
	}
	if err := validate.Struct(query); err != nil {
		return googleads.DateRange{}, fmt.Errorf("invalid date range parameters")
	}
	return googleads.ParseDateRange(query.Preset, query.From, query.To, time.Now())
}

func customerIDFromParams(c *fiber.Ctx) (string, error) {
	return config.NormalizeCustomerID(c.Params("customerId"))
}

func parseBoolQuery(c *fiber.Ctx, key string) bool {
	value := strings.ToLower(strings.TrimSpace(c.Query(key)))
	return value == "true" || value == "1"
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// reportMeta is the meta block attached to every report response.
func reportMeta(cacheHit bool, r googleads.DateRange) map[string]interface{} {
	return map[string]interface{}{
		"cache_hit": cacheHit,
		"range":     r.Label(),
	}
}

func recordCacheLookup(report string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	observability.CacheLookups().WithLabelValues(report, result).Inc()
}

// sendReportError maps vendor failures to 502 so the front-end can tell an
// upstream outage from a bug in this service.
func sendReportError(c *fiber.Ctx, logger zerolog.Logger, report string, err error) error {
	var apiErr *googleads.APIError
	if errors.As(err, &apiErr) {
		logger.Error().
			Err(err).
			Str("report", report).
			Str("request_id", apiErr.RequestID).
			Msg("google ads api request failed")
		message := "google ads api request failed"
		if apiErr.RequestID != "" {
			message = fmt.Sprintf("google ads api request failed (request id %s)", apiErr.RequestID)
		}
		return utils.SendError(c, fiber.StatusBadGateway, message)
	}

	logger.Error().Err(err).Str("report", report).Msg("failed to build report")
	return utils.SendError(c, fiber.StatusInternalServerError, "failed to build report")
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) zerolog.Logger {
	if correlation := middleware.GetCorrelationID(c); correlation != "" {
		return base.With().Str("correlation_id", correlation).Logger()
	}
	return base
}
