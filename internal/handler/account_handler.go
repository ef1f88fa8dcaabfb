package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/justcarpets/ads-dashboard-api/internal/service"
	"github.com/justcarpets/ads-dashboard-api/internal/utils"
)

// AccountHandler exposes the account listing endpoint.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler creates a new handler instance.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("component", "account_handler").Logger(),
	}
}

// Register attaches the account listing endpoint.
func (h *AccountHandler) Register(router fiber.Router) {
	router.Get("/accounts", h.listAccounts)
}

func (h *AccountHandler) listAccounts(c *fiber.Ctx) error {
	accounts, cacheHit, err := h.service.ListAccounts(c.Context())
	if err != nil {
		return sendReportError(c, requestLogger(h.logger, c), "accounts", err)
	}
	recordCacheLookup("accounts", cacheHit)

	return utils.SendSuccessWithMeta(c, "accounts retrieved", accounts, map[string]interface{}{
		"cache_hit": cacheHit,
	})
}
