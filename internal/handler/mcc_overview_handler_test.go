package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/justcarpets/ads-dashboard-api/internal/dto"
	"github.com/justcarpets/ads-dashboard-api/internal/handler"
	"github.com/justcarpets/ads-dashboard-api/internal/service"
)

type stubMccOverviewService struct {
	response dto.MccOverviewResponse
	cacheHit bool
	err      error
}

func (s *stubMccOverviewService) GetOverview(_ context.Context, _ service.MccOverviewParams) (dto.MccOverviewResponse, bool, error) {
	if s.err != nil {
		return dto.MccOverviewResponse{}, false, s.err
	}
	return s.response, s.cacheHit, nil
}

func TestMccOverviewHandler_Success(t *testing.T) {
	svc := &stubMccOverviewService{
		response: dto.MccOverviewResponse{
			Accounts: []dto.MccAccountSummary{
				{Market: "NL", CustomerID: "5756290882", Metrics: dto.Metrics{Cost: 120.5}},
				{Market: "DE", CustomerID: "1946606314", Error: "account fetch failed"},
			},
			Totals:         dto.Metrics{Cost: 120.5},
			AccountCount:   2,
			FailedAccounts: 1,
		},
	}

	app := fiber.New()
	validate := validator.New(validator.WithRequiredStructEnabled())
	group := app.Group("/api/v1/mcc")
	handler.NewMccOverviewHandler(svc, validate, zerolog.Nop()).Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mcc/overview?range=YESTERDAY", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                    `json:"success"`
		Data    dto.MccOverviewResponse `json:"data"`
		Meta    map[string]interface{}  `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Len(t, payload.Data.Accounts, 2)
	require.Equal(t, 1, payload.Data.FailedAccounts)
	require.Equal(t, "account fetch failed", payload.Data.Accounts[1].Error)
	require.Equal(t, false, payload.Meta["cache_hit"])
}

func TestMccOverviewHandler_InvalidRange(t *testing.T) {
	app := fiber.New()
	validate := validator.New(validator.WithRequiredStructEnabled())
	group := app.Group("/api/v1/mcc")
	handler.NewMccOverviewHandler(&stubMccOverviewService{}, validate, zerolog.Nop()).Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mcc/overview?range=FOREVER", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
