package handler_test

import (
	"context"
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

type stubKeywordReportService struct {
	lastParams service.KeywordReportParams
	calls      int
}

func (s *stubKeywordReportService) GetReport(_ context.Context, _ string, params service.KeywordReportParams) (dto.KeywordReportResponse, bool, error) {
	s.calls++
	s.lastParams = params
	return dto.KeywordReportResponse{Keywords: []dto.KeywordRow{}}, false, nil
}

func keywordApp(svc service.KeywordReportService) *fiber.App {
	app := fiber.New()
	validate := validator.New(validator.WithRequiredStructEnabled())
	group := app.Group("/api/v1/accounts/:customerId")
	handler.NewKeywordReportHandler(svc, validate, zerolog.Nop()).Register(group)
	return app
}

func TestKeywordReportHandler_PassesLimit(t *testing.T) {
	svc := &stubKeywordReportService{}
	app := keywordApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/5756290882/keywords?limit=25", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, svc.calls)
	require.Equal(t, 25, svc.lastParams.Limit)
}

func TestKeywordReportHandler_RejectsBadLimit(t *testing.T) {
	svc := &stubKeywordReportService{}
	app := keywordApp(svc)

	for _, target := range []string{
		"/api/v1/accounts/5756290882/keywords?limit=abc",
		"/api/v1/accounts/5756290882/keywords?limit=-5",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, target)
	}
	require.Zero(t, svc.calls)
}
